package registry

import (
	"context"
	"sync"

	"github.com/arko-martian/peacore/manifest"
	"github.com/arko-martian/peacore/pkgerr"
)

// MemoryAdapter is a pre-seeded in-memory registry double, used by the
// resolver's own tests and suitable as a local/offline registry.
type MemoryAdapter struct {
	mu        sync.RWMutex
	metadata  map[string]*manifest.RegistryMetadata
	tarballs  map[string][]byte
}

// NewMemoryAdapter returns an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		metadata: make(map[string]*manifest.RegistryMetadata),
		tarballs: make(map[string][]byte),
	}
}

// Seed registers metadata for name.
func (m *MemoryAdapter) Seed(name string, md *manifest.RegistryMetadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[name] = md
}

// SeedTarball registers tarball bytes for url.
func (m *MemoryAdapter) SeedTarball(url string, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tarballs[url] = b
}

func (m *MemoryAdapter) FetchMetadata(_ context.Context, name string) (*manifest.RegistryMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	md, ok := m.metadata[name]
	if !ok {
		return nil, pkgerr.PackageNotFoundErr(name)
	}
	return md, nil
}

func (m *MemoryAdapter) FetchTarball(_ context.Context, url string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.tarballs[url]
	if !ok {
		return nil, pkgerr.New(pkgerr.Network, "no tarball seeded for "+url)
	}
	return b, nil
}
