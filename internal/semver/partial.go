package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arko-martian/peacore/pkgerr"
)

// PartialVersion is a version with a required major component and
// optional minor, patch and prerelease. It is the operand of a
// Comparator, and is what lets "^1", "~1.2" and "1.2.3-rc.1" all parse
// as requirement fragments without forcing a caller to spell out every
// field.
type PartialVersion struct {
	Major      uint64
	Minor      *uint64
	Patch      *uint64
	Prerelease string
}

func parsePartial(s string) (PartialVersion, error) {
	rest := s

	var prerelease string
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		prerelease = rest[i+1:]
		rest = rest[:i]
		if prerelease == "" {
			return PartialVersion{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid prerelease in requirement %q", s))
		}
	}

	parts := strings.Split(rest, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return PartialVersion{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid version fragment %q", s))
	}

	major, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return PartialVersion{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid major version %q", parts[0]))
	}

	pv := PartialVersion{Major: major, Prerelease: prerelease}

	if len(parts) >= 2 {
		minor, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return PartialVersion{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid minor version %q", parts[1]))
		}
		pv.Minor = &minor
	}
	if len(parts) == 3 {
		patch, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return PartialVersion{}, pkgerr.New(pkgerr.ConfigValidation, fmt.Sprintf("invalid patch version %q", parts[2]))
		}
		pv.Patch = &patch
	}

	return pv, nil
}

// toVersion fills unspecified fields with zero, for ordering comparisons.
func (p PartialVersion) toVersion() Version {
	v := Version{Major: p.Major, Prerelease: p.Prerelease}
	if p.Minor != nil {
		v.Minor = *p.Minor
	}
	if p.Patch != nil {
		v.Patch = *p.Patch
	}
	return v
}
