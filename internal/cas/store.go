package cas

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	flock "github.com/theckman/go-flock"

	"github.com/arko-martian/peacore/pkgerr"
)

// Store is a Blake3-addressed blob store rooted at a directory on disk.
// Blobs live under <root>/<hex[0:2]>/<hex[2:4]>/<hex>; the index lives at
// <root>/index.json and is guarded by an advisory file lock for
// multi-process SaveIndex calls, the same role theckman/go-flock plays
// for dep's own cross-process coordination.
type Store struct {
	root string
	idx  *index
	lock *flock.Flock

	keyMu   sync.Mutex
	keyLock map[string]*sync.Mutex
}

// Open opens (or initializes) a store rooted at root, loading any
// existing index.json.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, pkgerr.IoErr(err, "create cas root "+root)
	}

	return &Store{
		root:    root,
		idx:     loadIndex(filepath.Join(root, "index.json")),
		lock:    flock.NewFlock(filepath.Join(root, ".lock")),
		keyLock: make(map[string]*sync.Mutex),
	}, nil
}

func (s *Store) indexPath() string { return filepath.Join(s.root, "index.json") }

func (s *Store) pathFor(h ContentHash) string {
	a, b, full := h.ShardPath()
	return filepath.Join(s.root, a, b, full)
}

func (s *Store) lockFor(key string) *sync.Mutex {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()
	m, ok := s.keyLock[key]
	if !ok {
		m = &sync.Mutex{}
		s.keyLock[key] = m
	}
	return m
}

// Contains is a pure existence check; it does not touch the index.
func (s *Store) Contains(h ContentHash) bool {
	_, err := os.Stat(s.pathFor(h))
	return err == nil
}

// Store writes b if not already present and returns its ContentHash.
// Concurrent calls storing identical bytes are idempotent: at most one
// write reaches disk, and every caller observes the same hash.
func (s *Store) Store(b []byte) (ContentHash, error) {
	h := Hash(b)
	key := h.String()

	mu := s.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().Unix()
	path := s.pathFor(h)

	if _, err := os.Stat(path); err == nil {
		s.idx.touch(key, now)
		return h, nil
	}

	a, bshard, _ := h.ShardPath()
	dir := filepath.Join(s.root, a, bshard)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return h, pkgerr.IoErr(err, "create cas shard directory")
	}

	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return h, pkgerr.IoErr(err, "create cas temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return h, pkgerr.IoErr(err, "write cas temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return h, pkgerr.IoErr(err, "close cas temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return h, pkgerr.IoErr(err, "rename cas blob into place")
	}

	s.idx.put(key, Entry{Hash: key, Size: int64(len(b)), StoredAt: now, LastAccessed: now})
	return h, nil
}

// Get reads the blob for h, touching its last-accessed timestamp.
func (s *Store) Get(h ContentHash) ([]byte, error) {
	b, err := os.ReadFile(s.pathFor(h))
	if err != nil {
		return nil, pkgerr.IntegrityErr("content missing from store: " + h.String())
	}
	s.idx.touch(h.String(), time.Now().Unix())
	return b, nil
}

// Verify re-hashes the stored bytes for h and compares against the key.
func (s *Store) Verify(h ContentHash) bool {
	b, err := os.ReadFile(s.pathFor(h))
	if err != nil {
		return false
	}
	return Hash(b) == h
}

// SaveIndex persists the index to disk under an advisory cross-process
// file lock.
func (s *Store) SaveIndex() error {
	locked, err := s.lock.TryLock()
	if err != nil {
		return pkgerr.IoErr(err, "acquire cas index lock")
	}
	if !locked {
		return pkgerr.New(pkgerr.Io, "cas index is locked by another process")
	}
	defer s.lock.Unlock()

	return errors.Wrap(s.idx.save(s.indexPath()), "save cas index")
}

// Entry returns the index entry for h, if known.
func (s *Store) Entry(h ContentHash) (Entry, bool) {
	return s.idx.get(h.String())
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }
