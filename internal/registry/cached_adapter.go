package registry

import (
	"context"
	"log"
	"time"

	"github.com/arko-martian/peacore/manifest"
)

// CachedAdapter composes the in-memory MetadataCache and an optional
// PersistentCache in front of an underlying Adapter. A miss at any tier
// populates every faster tier on the way back up.
type CachedAdapter struct {
	underlying Adapter
	memory     *MetadataCache
	persistent *PersistentCache // nil when unavailable
	ttl        time.Duration
	logger     *log.Logger
}

// NewCachedAdapter wraps underlying with an in-memory cache and, if
// persistentPath is non-empty, a bolt-backed persistent tier. A failure
// to open the persistent tier is logged and treated as non-fatal: a
// missing warm cache must never block an install.
func NewCachedAdapter(underlying Adapter, persistentPath string, logger *log.Logger) *CachedAdapter {
	a := &CachedAdapter{
		underlying: underlying,
		memory:     NewMetadataCache(),
		ttl:        defaultTTL,
		logger:     logger,
	}

	if persistentPath != "" {
		pc, err := OpenPersistentCache(persistentPath)
		if err != nil {
			if logger != nil {
				logger.Printf("warning: persistent metadata cache unavailable: %v", err)
			}
		} else {
			a.persistent = pc
		}
	}

	return a
}

func (a *CachedAdapter) FetchMetadata(ctx context.Context, name string) (*manifest.RegistryMetadata, error) {
	if md, ok := a.memory.Get(name); ok {
		return md, nil
	}

	if a.persistent != nil {
		if md, ok := a.persistent.Get(name, a.ttl); ok {
			a.memory.Insert(name, md)
			return md, nil
		}
	}

	md, err := a.underlying.FetchMetadata(ctx, name)
	if err != nil {
		return nil, err
	}

	a.memory.Insert(name, md)
	if a.persistent != nil {
		if err := a.persistent.Put(name, md); err != nil && a.logger != nil {
			a.logger.Printf("warning: failed to persist metadata for %s: %v", name, err)
		}
	}
	return md, nil
}

func (a *CachedAdapter) FetchTarball(ctx context.Context, url string) ([]byte, error) {
	return a.underlying.FetchTarball(ctx, url)
}

// Close releases the persistent tier, if one was opened.
func (a *CachedAdapter) Close() error {
	if a.persistent != nil {
		return a.persistent.Close()
	}
	return nil
}
