package registry

import (
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/arko-martian/peacore/manifest"
)

var metadataBucket = []byte("metadata")

// PersistentCache is an on-disk, bolt-backed tier sitting between the
// in-memory MetadataCache and the network. It gives warm restarts: a
// fresh process can serve root-package metadata without a fetch if a
// prior process already populated this database. Modeled on dep's own
// boltCache (internal/gps/source_cache_bolt.go) — a single bucket
// keyed by the package name here, rather than dep's per-revision
// buckets, since there is exactly one JSON blob per package to cache.
type PersistentCache struct {
	db *bolt.DB
}

type persistedEntry struct {
	StoredAt int64                      `json:"stored_at"`
	Metadata *manifest.RegistryMetadata `json:"metadata"`
}

// OpenPersistentCache opens (creating if absent) a bolt database at
// path with a single "metadata" bucket.
func OpenPersistentCache(path string) (*PersistentCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open persistent metadata cache at %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(metadataBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initialize metadata bucket")
	}

	return &PersistentCache{db: db}, nil
}

// Get returns the cached metadata for name if present and within ttl.
// A stale hit is not deleted eagerly: bolt's single-writer transaction
// model makes that an unnecessary write on the hot read path, and the
// next successful Put silently overwrites it.
func (c *PersistentCache) Get(name string, ttl time.Duration) (*manifest.RegistryMetadata, bool) {
	var entry persistedEntry
	found := false

	_ = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(metadataBucket)
		v := b.Get([]byte(name))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &entry); err != nil {
			return nil
		}
		found = true
		return nil
	})

	if !found {
		return nil, false
	}
	if time.Since(time.Unix(entry.StoredAt, 0)) > ttl {
		return nil, false
	}
	return entry.Metadata, true
}

// Put writes md for name under a single Update transaction.
func (c *PersistentCache) Put(name string, md *manifest.RegistryMetadata) error {
	entry := persistedEntry{StoredAt: time.Now().Unix(), Metadata: md}
	b, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "marshal persisted metadata entry")
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metadataBucket).Put([]byte(name), b)
	})
}

// Close closes the underlying database.
func (c *PersistentCache) Close() error {
	return errors.Wrap(c.db.Close(), "close persistent metadata cache")
}
