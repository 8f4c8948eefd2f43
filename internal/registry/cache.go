package registry

import (
	"sync"
	"time"

	"github.com/arko-martian/peacore/manifest"
)

const defaultTTL = time.Hour

type cacheEntry struct {
	metadata *manifest.RegistryMetadata
	storedAt time.Time
	ttl      time.Duration
}

func (e cacheEntry) isFresh(now time.Time) bool {
	return now.Sub(e.storedAt) <= e.ttl
}

// MetadataCache is an in-memory, per-process TTL cache of registry
// responses. A stale entry is lazily dropped the next time it's looked
// up, rather than proactively swept.
type MetadataCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewMetadataCache returns an empty MetadataCache.
func NewMetadataCache() *MetadataCache {
	return &MetadataCache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached metadata for name if present and not stale.
func (c *MetadataCache) Get(name string) (*manifest.RegistryMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	if !e.isFresh(time.Now()) {
		delete(c.entries, name)
		return nil, false
	}
	return e.metadata, true
}

// Insert stores md for name with the default one-hour TTL.
func (c *MetadataCache) Insert(name string, md *manifest.RegistryMetadata) {
	c.InsertWithTTL(name, md, defaultTTL)
}

// InsertWithTTL stores md for name with an explicit TTL.
func (c *MetadataCache) InsertWithTTL(name string, md *manifest.RegistryMetadata, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = cacheEntry{metadata: md, storedAt: time.Now(), ttl: ttl}
}

// Cleanup drops every stale entry and returns how many were removed.
func (c *MetadataCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range c.entries {
		if !e.isFresh(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Stats is a point-in-time fresh/stale/total breakdown.
type Stats struct {
	Fresh, Stale, Total int
}

// Stats scans every entry and classifies it fresh or stale.
func (c *MetadataCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	s := Stats{Total: len(c.entries)}
	for _, e := range c.entries {
		if e.isFresh(now) {
			s.Fresh++
		} else {
			s.Stale++
		}
	}
	return s
}

// Clear removes every entry.
func (c *MetadataCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
