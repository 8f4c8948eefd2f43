// Package registry provides the Adapter interface the resolver depends
// on, two concrete implementations (in-memory and HTTP), an in-memory
// TTL cache of metadata responses, and a bolt-backed persistent tier
// that survives process restarts.
package registry

import (
	"context"

	"github.com/arko-martian/peacore/manifest"
)

// Adapter is the single interface the resolver depends on to reach a
// registry, real or fake.
type Adapter interface {
	FetchMetadata(ctx context.Context, name string) (*manifest.RegistryMetadata, error)
	FetchTarball(ctx context.Context, url string) ([]byte, error)
}
