// Package pkgerr defines the single error taxonomy shared across the
// resolver, cas, tarball, linker and registry packages. It mirrors the
// shape dep's internal packages use for their own sentinel-like error
// hierarchies: one concrete type, a closed set of kinds, and an
// Unwrap chain so callers can still errors.Is/errors.As against causes.
package pkgerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the fixed error categories the core can produce.
type Kind int

const (
	TomlParse Kind = iota
	JsonParse
	ConfigValidation
	PackageNotFound
	Network
	VersionConflict
	CircularDependency
	IntegrityFailure
	ModuleNotFound
	PermissionDenied
	JavaScript
	Io
)

func (k Kind) String() string {
	switch k {
	case TomlParse:
		return "TomlParse"
	case JsonParse:
		return "JsonParse"
	case ConfigValidation:
		return "ConfigValidation"
	case PackageNotFound:
		return "PackageNotFound"
	case Network:
		return "Network"
	case VersionConflict:
		return "VersionConflict"
	case CircularDependency:
		return "CircularDependency"
	case IntegrityFailure:
		return "IntegrityFailure"
	case ModuleNotFound:
		return "ModuleNotFound"
	case PermissionDenied:
		return "PermissionDenied"
	case JavaScript:
		return "JavaScript"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error is the concrete error value produced by every package in this
// module. Kind-specific detail lives in the optional fields rather than
// as distinct exported types, so one error path can flow through
// errors.Wrap without type-switches at every boundary.
type Error struct {
	Kind    Kind
	Message string

	// Package/version-conflict detail.
	Package     string
	Required    string
	Conflicting string

	// Cycle detail (CircularDependency).
	Cycle string

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case VersionConflict:
		return fmt.Sprintf("version conflict for %q: required %s, conflicting %s", e.Package, e.Required, e.Conflicting)
	case CircularDependency:
		return fmt.Sprintf("circular dependency detected: %s", e.Cycle)
	default:
		if e.Message != "" {
			return e.Message
		}
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Recoverable reports whether a caller could plausibly retry the
// operation that produced this error. Only transient, environment-level
// failures qualify.
func (e *Error) Recoverable() bool {
	return e.Kind == Network || e.Kind == Io
}

// Suggestion returns user-facing remediation text for the error's kind,
// when one exists.
func (e *Error) Suggestion() (string, bool) {
	switch e.Kind {
	case Network:
		return "check your connection", true
	case VersionConflict:
		return "try updating dependencies", true
	case PackageNotFound:
		return "check spelling", true
	case CircularDependency:
		return "restructure to remove cycle", true
	case PermissionDenied:
		return "grant appropriate access", true
	default:
		return "", false
	}
}

func new_(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// Wrap attaches kind to an existing cause, preserving the chain via
// pkg/errors: formatting Unwrap() with %+v shows a stack trace at the
// wrap site. The *Error itself formats as its message only.
func Wrap(kind Kind, cause error, msg string) *Error {
	return new_(kind, msg, errors.Wrap(cause, msg))
}

func New(kind Kind, msg string) *Error {
	return new_(kind, msg, nil)
}

func NetworkErr(cause error, msg string) *Error {
	return Wrap(Network, cause, msg)
}

func IoErr(cause error, msg string) *Error {
	return Wrap(Io, cause, msg)
}

func IntegrityErr(msg string) *Error {
	return New(IntegrityFailure, msg)
}

func PackageNotFoundErr(name string) *Error {
	return New(PackageNotFound, fmt.Sprintf("package not found: %s", name))
}

func VersionConflictErr(pkg, required, conflicting string) *Error {
	return &Error{Kind: VersionConflict, Package: pkg, Required: required, Conflicting: conflicting}
}

func CircularDependencyErr(cycle string) *Error {
	return &Error{Kind: CircularDependency, Cycle: cycle}
}

func ConfigValidationErr(msg string) *Error {
	return New(ConfigValidation, msg)
}
