package registry

import (
	"testing"
	"time"

	"github.com/arko-martian/peacore/manifest"
)

func TestMetadataCacheFreshness(t *testing.T) {
	c := NewMetadataCache()
	md := &manifest.RegistryMetadata{Name: "left-pad"}

	c.InsertWithTTL("left-pad", md, 10*time.Millisecond)
	if _, ok := c.Get("left-pad"); !ok {
		t.Fatal("expected fresh hit")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("left-pad"); ok {
		t.Fatal("expected stale entry to be evicted")
	}
}

func TestMetadataCacheCleanup(t *testing.T) {
	c := NewMetadataCache()
	c.InsertWithTTL("a", &manifest.RegistryMetadata{Name: "a"}, time.Millisecond)
	c.Insert("b", &manifest.RegistryMetadata{Name: "b"})

	time.Sleep(5 * time.Millisecond)
	removed := c.Cleanup()
	if removed != 1 {
		t.Fatalf("expected 1 stale entry removed, got %d", removed)
	}

	stats := c.Stats()
	if stats.Total != 1 || stats.Fresh != 1 {
		t.Fatalf("unexpected stats after cleanup: %+v", stats)
	}
}
