package graph

import (
	"fmt"
	"sync"

	"github.com/arko-martian/peacore/pkgerr"
)

type edgeKey struct {
	from PackageId
	to   PackageId
}

// DependencyGraph is a directed graph over PackageId, safe for
// concurrent AddPackage/AddDependency calls (the resolver fans out
// recursive resolution across goroutines and relies on that).
type DependencyGraph struct {
	mu    sync.Mutex
	nodes map[PackageId]PackageNode
	out   map[PackageId][]PackageId
	edges map[edgeKey]DependencyEdge
}

// New returns an empty graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[PackageId]PackageNode),
		out:   make(map[PackageId][]PackageId),
		edges: make(map[edgeKey]DependencyEdge),
	}
}

// AddPackage inserts node if its id is not already present. Idempotent:
// calling it again with the same id is a no-op and returns the
// originally stored node.
func (g *DependencyGraph) AddPackage(node PackageNode) PackageNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.nodes[node.Id]; ok {
		return existing
	}
	g.nodes[node.Id] = node
	return node
}

// AddDependency records an edge from -> to. Both endpoints must already
// exist in the graph.
func (g *DependencyGraph) AddDependency(from, to PackageId, edge DependencyEdge) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[from]; !ok {
		return pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("unknown dependent package %s@%s", from.Name, from.Version))
	}
	if _, ok := g.nodes[to]; !ok {
		return pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("unknown dependency package %s@%s", to.Name, to.Version))
	}

	key := edgeKey{from, to}
	if _, exists := g.edges[key]; !exists {
		g.out[from] = append(g.out[from], to)
	}
	g.edges[key] = edge
	return nil
}

// Packages returns every node currently in the graph.
func (g *DependencyGraph) Packages() []PackageNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]PackageNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// PackageCount returns the number of nodes.
func (g *DependencyGraph) PackageCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// DependencyCount returns the number of edges.
func (g *DependencyGraph) DependencyCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.edges)
}

// Edge returns the edge recorded from -> to, if any.
func (g *DependencyGraph) Edge(from, to PackageId) (DependencyEdge, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}
