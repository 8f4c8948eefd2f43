package semver

import "sort"

// FindMatching returns every version in available that satisfies req,
// sorted highest to lowest.
func FindMatching(available []Version, req VersionReq) []Version {
	var out []Version
	for _, v := range available {
		if req.Matches(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Less(out[i]) })
	return out
}

func matchesAll(v Version, reqs []VersionReq) bool {
	for _, r := range reqs {
		if !r.Matches(v) {
			return false
		}
	}
	return true
}

// SelectBest returns the highest version satisfying every requirement,
// including prereleases.
func SelectBest(available []Version, reqs []VersionReq) (Version, bool) {
	var best Version
	found := false
	for _, v := range available {
		if matchesAll(v, reqs) && (!found || best.Less(v)) {
			best = v
			found = true
		}
	}
	return best, found
}

// SelectBestStable is SelectBest restricted to versions without a
// prerelease component.
func SelectBestStable(available []Version, reqs []VersionReq) (Version, bool) {
	var stable []Version
	for _, v := range available {
		if v.IsStable() {
			stable = append(stable, v)
		}
	}
	return SelectBest(stable, reqs)
}

// SelectPreferred chooses SelectBest when allowPrerelease is set;
// otherwise it prefers a stable match and only falls back to a
// prerelease match when no stable candidate satisfies the requirements.
func SelectPreferred(available []Version, reqs []VersionReq, allowPrerelease bool) (Version, bool) {
	if allowPrerelease {
		return SelectBest(available, reqs)
	}
	if v, ok := SelectBestStable(available, reqs); ok {
		return v, true
	}
	return SelectBest(available, reqs)
}

// HasMatching reports whether any version in available satisfies req.
func HasMatching(available []Version, req VersionReq) bool {
	for _, v := range available {
		if req.Matches(v) {
			return true
		}
	}
	return false
}

// HighestVersion returns the maximum of available, if non-empty.
func HighestVersion(available []Version) (Version, bool) {
	if len(available) == 0 {
		return Version{}, false
	}
	best := available[0]
	for _, v := range available[1:] {
		if best.Less(v) {
			best = v
		}
	}
	return best, true
}

// LowestVersion returns the minimum of available, if non-empty.
func LowestVersion(available []Version) (Version, bool) {
	if len(available) == 0 {
		return Version{}, false
	}
	low := available[0]
	for _, v := range available[1:] {
		if v.Less(low) {
			low = v
		}
	}
	return low, true
}
