package resolver

import "github.com/arko-martian/peacore/internal/graph"

// ConflictEntry reports a single package name resolved to more than
// one version within the same graph.
type ConflictEntry struct {
	Name     string
	Versions []string
}

// DetectConflicts groups the graph's nodes by name and returns an
// entry for every name associated with more than one version. No
// backtracking occurs — the resolver's single-version discipline is
// enforced here, after the fact, rather than during construction.
func DetectConflicts(g *graph.DependencyGraph) []ConflictEntry {
	byName := make(map[string][]string)
	for _, n := range g.Packages() {
		byName[n.Name] = append(byName[n.Name], n.Version)
	}

	var conflicts []ConflictEntry
	for name, versions := range byName {
		if len(versions) > 1 {
			conflicts = append(conflicts, ConflictEntry{Name: name, Versions: versions})
		}
	}
	return conflicts
}
