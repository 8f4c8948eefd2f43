package semver

import (
	"fmt"
	"strings"

	"github.com/arko-martian/peacore/pkgerr"
)

// Op is a comparator operator.
type Op int

const (
	OpExact Op = iota
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpTilde
	OpCaret
	OpWildcard
)

// Comparator is one operator/partial-version pair. A VersionReq matches
// a Version iff every one of its comparators matches.
type Comparator struct {
	Op      Op
	Partial PartialVersion
}

// Matches reports whether v satisfies this single comparator.
func (c Comparator) Matches(v Version) bool {
	switch c.Op {
	case OpWildcard:
		return true
	case OpExact:
		return partialEquals(c.Partial, v)
	case OpGreater:
		return v.Compare(c.Partial.toVersion()) > 0
	case OpGreaterEq:
		return v.Compare(c.Partial.toVersion()) >= 0
	case OpLess:
		return v.Compare(c.Partial.toVersion()) < 0
	case OpLessEq:
		return v.Compare(c.Partial.toVersion()) <= 0
	case OpTilde:
		return matchesTilde(c.Partial, v)
	case OpCaret:
		return matchesCaret(c.Partial, v)
	default:
		return false
	}
}

func partialEquals(p PartialVersion, v Version) bool {
	if p.Major != v.Major {
		return false
	}
	if p.Minor != nil && *p.Minor != v.Minor {
		return false
	}
	if p.Patch != nil && *p.Patch != v.Patch {
		return false
	}
	return p.Prerelease == v.Prerelease
}

func matchesTilde(p PartialVersion, v Version) bool {
	if p.Major != v.Major {
		return false
	}
	if p.Minor != nil {
		if *p.Minor != v.Minor {
			return false
		}
		patch := uint64(0)
		if p.Patch != nil {
			patch = *p.Patch
		}
		return v.Patch >= patch
	}
	return true
}

func matchesCaret(p PartialVersion, v Version) bool {
	if p.Major != v.Major {
		return false
	}
	return v.Compare(p.toVersion()) >= 0
}

// VersionReq is a conjunction of comparators.
type VersionReq struct {
	Comparators []Comparator
	raw         string
}

func (r VersionReq) String() string { return r.raw }

// Matches reports whether v satisfies every comparator in the requirement.
func (r VersionReq) Matches(v Version) bool {
	for _, c := range r.Comparators {
		if !c.Matches(v) {
			return false
		}
	}
	return true
}

// ParseReq parses a requirement string. Supported prefixes are
// ^ ~ >= <= > < = and the bare wildcard "*"; a requirement with no
// recognized prefix is treated as Exact.
func ParseReq(s string) (VersionReq, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VersionReq{}, pkgerr.New(pkgerr.ConfigValidation, "empty version requirement")
	}
	if s == "*" {
		return VersionReq{Comparators: []Comparator{{Op: OpWildcard}}, raw: s}, nil
	}

	op, rest := splitOp(s)
	partial, err := parsePartial(rest)
	if err != nil {
		return VersionReq{}, err
	}

	return VersionReq{Comparators: []Comparator{{Op: op, Partial: partial}}, raw: s}, nil
}

func splitOp(s string) (Op, string) {
	switch {
	case strings.HasPrefix(s, "^"):
		return OpCaret, s[1:]
	case strings.HasPrefix(s, "~"):
		return OpTilde, s[1:]
	case strings.HasPrefix(s, ">="):
		return OpGreaterEq, s[2:]
	case strings.HasPrefix(s, "<="):
		return OpLessEq, s[2:]
	case strings.HasPrefix(s, ">"):
		return OpGreater, s[1:]
	case strings.HasPrefix(s, "<"):
		return OpLess, s[1:]
	case strings.HasPrefix(s, "="):
		return OpExact, s[1:]
	default:
		return OpExact, s
	}
}

func (o Op) symbol() string {
	switch o {
	case OpCaret:
		return "^"
	case OpTilde:
		return "~"
	case OpGreaterEq:
		return ">="
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpWildcard:
		return "*"
	default:
		return ""
	}
}

func (c Comparator) String() string {
	if c.Op == OpWildcard {
		return "*"
	}
	parts := fmt.Sprintf("%d", c.Partial.Major)
	if c.Partial.Minor != nil {
		parts += fmt.Sprintf(".%d", *c.Partial.Minor)
		if c.Partial.Patch != nil {
			parts += fmt.Sprintf(".%d", *c.Partial.Patch)
		}
	}
	if c.Partial.Prerelease != "" {
		parts += "-" + c.Partial.Prerelease
	}
	return c.Op.symbol() + parts
}
