package cas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestIndexPersistsAsTupleArray locks down the on-disk index.json shape:
// a sequence of 2-element [key, entry] arrays, not {"key":...,"entry":...}
// objects, so the same cache directory can be read by a sibling
// implementation.
func TestIndexPersistsAsTupleArray(t *testing.T) {
	dir, err := os.MkdirTemp("", "cas-index-test-")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	idx := newIndex()
	idx.put("abc123", Entry{Hash: "abc123", Size: 42, StoredAt: 1000, LastAccessed: 1000})

	path := filepath.Join(dir, "index.json")
	if err := idx.save(path); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("index.json is not a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 row, got %d", len(raw))
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(raw[0], &tuple); err != nil {
		t.Fatalf("row is not a JSON array: %v", err)
	}
	if len(tuple) != 2 {
		t.Fatalf("expected a 2-element [key, entry] tuple, got %d elements", len(tuple))
	}

	var key string
	if err := json.Unmarshal(tuple[0], &key); err != nil {
		t.Fatalf("first tuple element is not a string key: %v", err)
	}
	if key != "abc123" {
		t.Fatalf("got key %q, want %q", key, "abc123")
	}

	reloaded := loadIndex(path)
	e, ok := reloaded.get("abc123")
	if !ok {
		t.Fatal("expected entry to survive round trip")
	}
	if e.Size != 42 || e.StoredAt != 1000 {
		t.Fatalf("unexpected entry after reload: %+v", e)
	}
}
