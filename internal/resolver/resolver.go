// Package resolver implements recursive, concurrent dependency
// resolution over a registry Adapter: version selection, workspace
// short-circuiting, feature-gated optional dependencies, and
// post-resolution cycle and peer validation.
package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arko-martian/peacore/internal/graph"
	"github.com/arko-martian/peacore/internal/registry"
	"github.com/arko-martian/peacore/internal/semver"
	"github.com/arko-martian/peacore/manifest"
	"github.com/arko-martian/peacore/pkgerr"
)

// Root is one top-level requirement to resolve.
type Root struct {
	Name string
	Req  string
}

// Options configure one resolution run.
type Options struct {
	Workspace       map[string]string // name -> local path
	EnabledFeatures map[string]bool
	AllowPrerelease bool
}

// Result is what a completed resolution returns.
type Result struct {
	Graph            *graph.DependencyGraph
	Roots            []graph.PackageId
	PackageCount     int
	ResolutionTimeMs int64
	Warnings         []string
}

// Resolver resolves manifests against a registry Adapter.
type Resolver struct {
	adapter registry.Adapter

	memoMu sync.Mutex
	memo   map[string]graph.PackageNode
}

// New returns a Resolver backed by adapter.
func New(adapter registry.Adapter) *Resolver {
	return &Resolver{adapter: adapter, memo: make(map[string]graph.PackageNode)}
}

// Resolve resolves every root requirement into a single DependencyGraph.
func (r *Resolver) Resolve(ctx context.Context, roots []Root, opts Options) (*Result, error) {
	start := time.Now()
	g := graph.New()

	eg, egCtx := errgroup.WithContext(ctx)
	rootIds := make([]graph.PackageId, len(roots))

	for i, root := range roots {
		i, root := i, root
		eg.Go(func() error {
			id, err := r.resolveRecursive(egCtx, g, root.Name, root.Req, opts)
			if err != nil {
				return err
			}
			rootIds[i] = id
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := g.ValidateNoCycles(); err != nil {
		return nil, err
	}

	warnings := r.validatePeerDependencies(ctx, g)

	return &Result{
		Graph:            g,
		Roots:            rootIds,
		PackageCount:     g.PackageCount(),
		ResolutionTimeMs: time.Since(start).Milliseconds(),
		Warnings:         warnings,
	}, nil
}

func memoKey(name, req string) string { return fmt.Sprintf("%s@%s", name, req) }

// resolveRecursive resolves a single (name, req) pair, inserts it into
// g, and — unless it's a workspace member — recurses into its normal
// dependencies before returning. Peer dependencies are neither resolved
// nor parsed or recorded here; validatePeerDependencies checks them
// only after the graph is complete.
func (r *Resolver) resolveRecursive(ctx context.Context, g *graph.DependencyGraph, name, req string, opts Options) (graph.PackageId, error) {
	key := memoKey(name, req)

	r.memoMu.Lock()
	if node, ok := r.memo[key]; ok {
		r.memoMu.Unlock()
		return node.Id, nil
	}
	r.memoMu.Unlock()

	versionReq, err := semver.ParseReq(req)
	if err != nil {
		return graph.PackageId{}, pkgerr.VersionConflictErr(name, req, "invalid version requirement")
	}

	if path, ok := opts.Workspace[name]; ok {
		node := graph.PackageNode{
			Id:          graph.PackageId{Name: name, Version: "0.0.0"},
			Name:        name,
			Version:     "0.0.0",
			ResolvedURL: "file://" + path,
			Integrity:   "workspace",
		}
		g.AddPackage(node)
		r.memoMu.Lock()
		r.memo[key] = node
		r.memoMu.Unlock()
		return node.Id, nil
	}

	md, err := r.adapter.FetchMetadata(ctx, name)
	if err != nil {
		return graph.PackageId{}, err
	}

	available := make([]semver.Version, 0, len(md.Versions))
	byVersion := make(map[string]manifest.RegistryVersion, len(md.Versions))
	for vs, rv := range md.Versions {
		v, err := semver.Parse(vs)
		if err != nil {
			continue
		}
		available = append(available, v)
		byVersion[v.String()] = rv
	}

	selected, ok := semver.SelectPreferred(available, []semver.VersionReq{versionReq}, opts.AllowPrerelease)
	if !ok {
		return graph.PackageId{}, pkgerr.VersionConflictErr(name, req, availableVersionsList(available))
	}

	rv := byVersion[selected.String()]
	integrity := rv.Dist.Integrity
	if integrity == "" {
		integrity = rv.Dist.Shasum
	}

	node := graph.PackageNode{
		Id:          graph.PackageId{Name: name, Version: selected.String()},
		Name:        name,
		Version:     selected.String(),
		ResolvedURL: rv.Dist.Tarball,
		Integrity:   integrity,
	}
	g.AddPackage(node)

	r.memoMu.Lock()
	r.memo[key] = node
	r.memoMu.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	for depName, depReq := range rv.Dependencies {
		depName, depReq := depName, depReq
		eg.Go(func() error {
			depId, err := r.resolveRecursive(ctx, g, depName, depReq, opts)
			if err != nil {
				return err
			}
			edgeReq, err := semver.ParseReq(depReq)
			if err != nil {
				return err
			}
			return g.AddDependency(node.Id, depId, graph.DependencyEdge{VersionReq: edgeReq, Kind: graph.Normal})
		})
	}

	// Optional dependencies only resolve if the caller enabled the
	// feature carrying the same name as the dependency.
	// (peer dependencies are intentionally not walked here: §4.6.)
	for depName, depReq := range rv.OptionalDependencies {
		if !opts.EnabledFeatures[depName] {
			continue
		}
		depName, depReq := depName, depReq
		eg.Go(func() error {
			depId, err := r.resolveRecursive(ctx, g, depName, depReq, opts)
			if err != nil {
				return err
			}
			edgeReq, err := semver.ParseReq(depReq)
			if err != nil {
				return err
			}
			return g.AddDependency(node.Id, depId, graph.DependencyEdge{VersionReq: edgeReq, Kind: graph.Optional, Optional: true})
		})
	}

	if err := eg.Wait(); err != nil {
		return graph.PackageId{}, err
	}

	return node.Id, nil
}

func availableVersionsList(vs []semver.Version) string {
	s := "available: "
	for i, v := range vs {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s
}
