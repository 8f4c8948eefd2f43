package main

import (
	"context"
	"time"

	"github.com/arko-martian/peacore/internal/cas"
)

// gcCommand removes cache entries stored more than one week ago. It
// passes an empty live set, so no entry is kept for being referenced by
// the current node_modules layout.
type gcCommand struct{}

func (c *gcCommand) Name() string { return "gc" }

func (c *gcCommand) Run(_ context.Context, cfg *Config, _ []string) error {
	store, err := cas.Open(cacheRootPath(cfg))
	if err != nil {
		return err
	}

	// A full implementation would derive the live set from a lockfile;
	// absent one, an empty live set collects everything past maxAge.
	live := map[string]struct{}{}

	result, err := store.GarbageCollect(live, 7*24*time.Hour)
	if err != nil {
		return err
	}

	cfg.Stdout.Printf("removed %d entries, freed %s\n", result.EntriesRemoved, result.FormatFreedSpace())
	return nil
}
