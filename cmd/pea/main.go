// Command pea is a thin CLI that wires the resolver, registry adapter,
// CAS and linker into a single install pipeline, in the spirit of
// dep's own cmd/dep: a small command interface dispatched from a
// Config carrying the working directory, args and standard streams.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
)

// command is one subcommand of the pea CLI.
type command interface {
	Name() string
	Run(ctx context.Context, cfg *Config, args []string) error
}

// Config carries everything a command needs, threaded explicitly rather
// than read from globals so commands stay testable.
type Config struct {
	WorkingDir string
	Args       []string
	Env        []string
	Stdout     *log.Logger
	Stderr     *log.Logger
}

func main() {
	cfg := &Config{
		WorkingDir: mustGetwd(),
		Args:       os.Args[1:],
		Env:        os.Environ(),
		Stdout:     log.New(os.Stdout, "", 0),
		Stderr:     log.New(os.Stderr, "", 0),
	}

	if err := run(cfg); err != nil {
		cfg.Stderr.Println("pea:", err)
		os.Exit(1)
	}
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return wd
}

var commands = []command{
	&installCommand{},
	&gcCommand{},
}

func run(cfg *Config) error {
	if len(cfg.Args) == 0 {
		usage(cfg)
		return fmt.Errorf("no command given")
	}

	name := cfg.Args[0]
	for _, c := range commands {
		if c.Name() == name {
			return c.Run(context.Background(), cfg, cfg.Args[1:])
		}
	}

	usage(cfg)
	return fmt.Errorf("unknown command %q", name)
}

func usage(cfg *Config) {
	w := tabwriter.NewWriter(cfg.Stderr.Writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "usage: pea <command> [arguments]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.Name())
	}
	w.Flush()
}

func nodeModulesPath(cfg *Config) string {
	return filepath.Join(cfg.WorkingDir, "node_modules")
}

func cacheRootPath(cfg *Config) string {
	return filepath.Join(cfg.WorkingDir, ".pea-cache")
}
