package main

import (
	"context"
	"fmt"

	"github.com/arko-martian/peacore/internal/cas"
	"github.com/arko-martian/peacore/internal/linker"
	"github.com/arko-martian/peacore/internal/registry"
	"github.com/arko-martian/peacore/internal/resolver"
	"github.com/arko-martian/peacore/internal/tarball"
)

// installCommand resolves every root dependency passed as "name@req"
// arguments, fetches their tarballs through the CAS, and materializes
// node_modules.
type installCommand struct{}

func (c *installCommand) Name() string { return "install" }

func (c *installCommand) Run(ctx context.Context, cfg *Config, args []string) error {
	roots, err := parseRootArgs(args)
	if err != nil {
		return err
	}

	store, err := cas.Open(cacheRootPath(cfg))
	if err != nil {
		return err
	}

	base := registry.NewHTTPAdapter(defaultRegistryURL(cfg))
	adapter := registry.NewCachedAdapter(base, cacheRootPath(cfg)+"/metadata.db", cfg.Stderr)
	defer adapter.Close()

	res := resolver.New(adapter)
	result, err := res.Resolve(ctx, roots, resolver.Options{})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		cfg.Stderr.Println("warning:", w)
	}

	var infos []linker.PackageInfo
	for _, node := range result.Graph.Packages() {
		if node.Integrity == "workspace" {
			continue
		}

		b, err := adapter.FetchTarball(ctx, node.ResolvedURL)
		if err != nil {
			return err
		}
		if _, err := store.Store(b); err != nil {
			return err
		}

		extractDir := fmt.Sprintf("%s/_extracted/%s@%s", cacheRootPath(cfg), node.Name, node.Version)
		if err := extractTarballBytes(b, extractDir); err != nil {
			return err
		}

		infos = append(infos, linker.PackageInfo{
			Name:       node.Name,
			Version:    node.Version,
			SourcePath: extractDir + "/package",
		})
	}

	l := linker.New(nodeModulesPath(cfg))
	stats, err := l.Materialize(infos)
	if err != nil {
		return err
	}

	if err := store.SaveIndex(); err != nil {
		return err
	}

	cfg.Stdout.Printf("linked %d packages (%d hardlinks, %d copies, %d bin shims) in %dms\n",
		stats.PackagesLinked, stats.Hardlinks, stats.Copies, stats.BinShims, result.ResolutionTimeMs)
	return nil
}

func extractTarballBytes(b []byte, dest string) error {
	return tarball.Extract(bytesReader(b), dest)
}

func defaultRegistryURL(cfg *Config) string {
	for _, e := range cfg.Env {
		if len(e) > len("PEA_REGISTRY=") && e[:len("PEA_REGISTRY=")] == "PEA_REGISTRY=" {
			return e[len("PEA_REGISTRY="):]
		}
	}
	return "https://registry.npmjs.org"
}
