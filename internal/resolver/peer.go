package resolver

import (
	"context"
	"fmt"

	"github.com/arko-martian/peacore/internal/graph"
	"github.com/arko-martian/peacore/internal/semver"
)

// validatePeerDependencies re-fetches metadata for every non-workspace
// node and checks its peer requirements against the resolved graph.
// Mismatches are warnings; they never fail resolution.
func (r *Resolver) validatePeerDependencies(ctx context.Context, g *graph.DependencyGraph) []string {
	var warnings []string

	resolvedByName := make(map[string]string)
	for _, n := range g.Packages() {
		resolvedByName[n.Name] = n.Version
	}

	for _, n := range g.Packages() {
		if n.Integrity == "workspace" {
			continue
		}

		md, err := r.adapter.FetchMetadata(ctx, n.Name)
		if err != nil {
			continue
		}
		rv, ok := md.Versions[n.Version]
		if !ok {
			continue
		}

		for peerName, peerReq := range rv.PeerDependencies {
			resolvedVersion, present := resolvedByName[peerName]
			if !present {
				warnings = append(warnings, fmt.Sprintf("unmet peer dependency: %s requires %s %s", n.Name, peerName, peerReq))
				continue
			}

			req, err := semver.ParseReq(peerReq)
			if err != nil {
				continue
			}
			v, err := semver.Parse(resolvedVersion)
			if err != nil {
				continue
			}
			if !req.Matches(v) {
				warnings = append(warnings, fmt.Sprintf("peer dependency mismatch: %s requires %s %s, got %s", n.Name, peerName, peerReq, resolvedVersion))
			}
		}
	}

	return warnings
}
