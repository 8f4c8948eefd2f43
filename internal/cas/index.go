package cas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// index is the in-memory, concurrency-safe side of index.json. Entries
// are addressed by hex key; a single RWMutex guards the whole map, which
// gives the touch-on-access path read-modify-write atomicity. Unrelated
// keys are serialized behind that same lock.
type index struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func newIndex() *index {
	return &index{entries: make(map[string]Entry)}
}

// indexPair is one (key, entry) row of index.json. It marshals as a
// 2-element JSON array, e.g. ["<hex>", {...}], matching the
// Vec<(String, CacheEntry)> wire shape so the same cache directory can
// be read by a sibling implementation.
type indexPair struct {
	Key   string
	Entry Entry
}

func (p indexPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Key, p.Entry})
}

func (p *indexPair) UnmarshalJSON(b []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &p.Key); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Entry)
}

func loadIndex(path string) *index {
	idx := newIndex()

	b, err := os.ReadFile(path)
	if err != nil {
		// Missing or unreadable index: start fresh rather than fail the
		// whole store open, per the index's documented corruption policy.
		return idx
	}

	var pairs []indexPair
	if err := json.Unmarshal(b, &pairs); err != nil {
		return newIndex()
	}

	for _, p := range pairs {
		idx.entries[p.Key] = p.Entry
	}
	return idx
}

func (ix *index) get(key string) (Entry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.entries[key]
	return e, ok
}

func (ix *index) put(key string, e Entry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries[key] = e
}

func (ix *index) touch(key string, now int64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if e, ok := ix.entries[key]; ok {
		e.LastAccessed = now
		ix.entries[key] = e
	}
}

func (ix *index) remove(key string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.entries, key)
}

func (ix *index) snapshot() []indexPair {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	pairs := make([]indexPair, 0, len(ix.entries))
	for k, v := range ix.entries {
		pairs = append(pairs, indexPair{Key: k, Entry: v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs
}

func (ix *index) save(path string) error {
	pairs := ix.snapshot()

	b, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal cas index")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create cas index directory")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return errors.Wrap(err, "write cas index temp file")
	}
	return errors.Wrap(os.Rename(tmp, path), "rename cas index into place")
}
