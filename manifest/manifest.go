// Package manifest defines the plain-data contract types the resolver
// and registry packages share: the project manifest shape and the
// registry's npm-style metadata response. No TOML/JSON loader is
// implemented against them; callers plug in their own and hand the
// resolver the typed value.
package manifest

// Dependency is one entry in a dependencies map. Either Version (a
// plain requirement string) or one of Git/Path/Workspace is set.
type Dependency struct {
	Version         string
	Git             string
	Path            string
	Workspace       bool
	Features        []string
	Optional        bool
	DefaultFeatures bool
}

// Manifest mirrors a package.json-like project descriptor.
type Manifest struct {
	Name    string
	Version string

	Dependencies         map[string]Dependency
	DevDependencies      map[string]Dependency
	PeerDependencies     map[string]Dependency
	OptionalDependencies map[string]Dependency

	Scripts  map[string]string
	Features map[string][]string

	Workspace *Workspace
}

// Workspace describes a monorepo's local member packages.
type Workspace struct {
	Members []string
	Exclude []string
	// Resolved maps a package name to its on-disk path, populated by the
	// caller after resolving the glob patterns in Members.
	Resolved map[string]string
}

// DistInfo is the npm-style "dist" block of one published version.
type DistInfo struct {
	Tarball      string
	Shasum       string
	Integrity    string
	UnpackedSize int64
	FileCount    int
}

// RegistryVersion is one entry of RegistryMetadata.Versions.
type RegistryVersion struct {
	Version              string
	Dist                 DistInfo
	Dependencies         map[string]string
	DevDependencies      map[string]string
	PeerDependencies     map[string]string
	OptionalDependencies map[string]string
}

// RegistryMetadata is the full per-package registry response.
type RegistryMetadata struct {
	Name     string
	DistTags map[string]string
	Versions map[string]RegistryVersion
	Time     map[string]string
}
