package graph

import (
	"strings"

	"github.com/arko-martian/peacore/pkgerr"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

// DetectCycles returns a representative cycle path, or nil if the graph
// is acyclic. The path is expressed as the sequence of PackageIds
// visited up to and including the repeated node.
func (g *DependencyGraph) DetectCycles() []PackageId {
	g.mu.Lock()
	nodes := make([]PackageId, 0, len(g.nodes))
	for id := range g.nodes {
		nodes = append(nodes, id)
	}
	out := make(map[PackageId][]PackageId, len(g.out))
	for k, v := range g.out {
		out[k] = append([]PackageId(nil), v...)
	}
	g.mu.Unlock()

	state := make(map[PackageId]visitState, len(nodes))
	var stack []PackageId

	var visit func(PackageId) []PackageId
	visit = func(id PackageId) []PackageId {
		state[id] = visiting
		stack = append(stack, id)

		for _, next := range out[id] {
			switch state[next] {
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			case visiting:
				// Found the back-edge; reconstruct the cycle from the
				// frontier entry for next to the current top of stack.
				start := 0
				for i, s := range stack {
					if s == next {
						start = i
						break
					}
				}
				cycle := append([]PackageId(nil), stack[start:]...)
				return append(cycle, next)
			case done:
				// already fully explored, no cycle through here
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, id := range nodes {
		if state[id] == unvisited {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// FormatCycle renders a cycle path as "a -> b -> c -> a".
func FormatCycle(cycle []PackageId) string {
	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = id.Name
	}
	return strings.Join(names, " -> ")
}

// ValidateNoCycles returns a CircularDependency error if the graph
// contains a cycle.
func (g *DependencyGraph) ValidateNoCycles() error {
	if cycle := g.DetectCycles(); cycle != nil {
		return pkgerr.CircularDependencyErr(FormatCycle(cycle))
	}
	return nil
}

// TopologicalSort returns nodes ordered so that for every edge u -> v,
// u precedes v (dependents before dependencies). It fails if the graph
// contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]PackageId, error) {
	g.mu.Lock()
	nodes := make([]PackageId, 0, len(g.nodes))
	for id := range g.nodes {
		nodes = append(nodes, id)
	}
	out := make(map[PackageId][]PackageId, len(g.out))
	for k, v := range g.out {
		out[k] = append([]PackageId(nil), v...)
	}
	g.mu.Unlock()

	state := make(map[PackageId]visitState, len(nodes))
	var order []PackageId
	var cycleErr error

	var visit func(PackageId)
	visit = func(id PackageId) {
		if cycleErr != nil {
			return
		}
		state[id] = visiting
		for _, next := range out[id] {
			switch state[next] {
			case unvisited:
				visit(next)
			case visiting:
				cycleErr = pkgerr.CircularDependencyErr(id.Name + " -> " + next.Name)
				return
			}
		}
		state[id] = done
		order = append(order, id)
	}

	for _, id := range nodes {
		if state[id] == unvisited {
			visit(id)
			if cycleErr != nil {
				return nil, cycleErr
			}
		}
	}

	// order was built post-order (dependencies before dependents);
	// reverse it so dependents precede their dependencies.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
