// Package graph implements the directed dependency graph: typed nodes
// keyed by package identity, typed edges carrying a version requirement,
// and cycle/topological-order analysis.
package graph

import "github.com/arko-martian/peacore/internal/semver"

// PackageId uniquely identifies a resolved package by name and version.
type PackageId struct {
	Name    string
	Version string
}

// EdgeKind classifies a DependencyEdge.
type EdgeKind int

const (
	Normal EdgeKind = iota
	Dev
	Peer
	Optional
)

// PackageNode is one resolved package in the graph.
type PackageNode struct {
	Id          PackageId
	Name        string
	Version     string
	ResolvedURL string
	Integrity   string
}

// DependencyEdge describes why one package depends on another.
type DependencyEdge struct {
	VersionReq semver.VersionReq
	Kind       EdgeKind
	Optional   bool
}
