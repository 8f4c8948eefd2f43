// Package semver implements the version and version-requirement model:
// parsing, ordering and requirement matching. The comparator grammar
// (^, ~, >=, <=, >, <, =, *) and the lexical (non-numeric-aware)
// prerelease ordering are deliberately not standard SemVer; they match
// the requirement language the rest of this module resolves against.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arko-martian/peacore/pkgerr"
)

// Version is an immutable three-component version with optional
// prerelease and build metadata.
type Version struct {
	Major, Minor, Patch uint64
	Prerelease          string // "" means none
	Build                string // "" means none
}

// Parse parses a version string of the form M.m.p[-prerelease][+build].
func Parse(s string) (Version, error) {
	rest := s

	var build string
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		build = rest[i+1:]
		rest = rest[:i]
		if build == "" {
			return Version{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid build metadata in version %q", s))
		}
	}

	var prerelease string
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		prerelease = rest[i+1:]
		rest = rest[:i]
		if prerelease == "" {
			return Version{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid prerelease in version %q", s))
		}
	}

	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return Version{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid version format %q: expected major.minor.patch", s))
	}

	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid number %q in version %q", p, s))
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Prerelease: prerelease, Build: build}, nil
}

// String renders the version in canonical M.m.p[-pre][+build] form.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// Compare returns -1, 0 or 1 following total order: core triple first,
// then prerelease where absence of a prerelease sorts higher than any
// prerelease value, and prerelease strings compare lexically. Build
// metadata never participates in ordering.
func (v Version) Compare(o Version) int {
	if c := cmpU64(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpU64(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmpU64(v.Patch, o.Patch); c != 0 {
		return c
	}

	switch {
	case v.Prerelease == "" && o.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	default:
		return strings.Compare(v.Prerelease, o.Prerelease)
	}
}

func (v Version) Less(o Version) bool    { return v.Compare(o) < 0 }
func (v Version) Equal(o Version) bool   { return v.Compare(o) == 0 }
func (v Version) IsStable() bool         { return v.Prerelease == "" }

func cmpU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
