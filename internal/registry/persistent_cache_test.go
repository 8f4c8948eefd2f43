package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arko-martian/peacore/manifest"
)

func TestPersistentCacheSurvivesReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "persistent-cache-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "metadata.db")

	c1, err := OpenPersistentCache(path)
	if err != nil {
		t.Fatal(err)
	}
	md := &manifest.RegistryMetadata{Name: "left-pad", Versions: map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0"},
	}}
	if err := c1.Put("left-pad", md); err != nil {
		t.Fatal(err)
	}
	if err := c1.Close(); err != nil {
		t.Fatal(err)
	}

	c2, err := OpenPersistentCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()

	got, ok := c2.Get("left-pad", time.Hour)
	if !ok {
		t.Fatal("expected cache hit after reopen")
	}
	if got.Name != "left-pad" {
		t.Fatalf("unexpected metadata: %+v", got)
	}
}

func TestPersistentCacheRespectsTTL(t *testing.T) {
	dir, err := os.MkdirTemp("", "persistent-cache-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	c, err := OpenPersistentCache(filepath.Join(dir, "metadata.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Put("left-pad", &manifest.RegistryMetadata{Name: "left-pad"})

	if _, ok := c.Get("left-pad", -time.Second); ok {
		t.Fatal("expected TTL of -1s to always miss")
	}
}
