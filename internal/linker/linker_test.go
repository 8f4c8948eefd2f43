package linker

import (
	"os"
	"path/filepath"
	"testing"
)

func writePackage(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "linker-pkg-")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestMaterializeScopedPackageWithBin(t *testing.T) {
	src := writePackage(t, "tool", map[string]string{
		"bin.js":   "#!/usr/bin/env node\nconsole.log('hi')",
		"index.js": "module.exports = {}",
	})

	dest, err := os.MkdirTemp("", "node_modules-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dest)

	l := New(dest)
	stats, err := l.Materialize([]PackageInfo{
		{
			Name:       "@org/tool",
			Version:    "1.0.0",
			SourcePath: src,
			Bin:        []BinEntry{{ShimName: "tool", Target: "bin.js"}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if stats.PackagesLinked != 1 {
		t.Fatalf("expected 1 package linked, got %d", stats.PackagesLinked)
	}
	if stats.BinShims != 1 {
		t.Fatalf("expected 1 bin shim, got %d", stats.BinShims)
	}

	targetFile := filepath.Join(dest, "@org", "tool", "bin.js")
	if _, err := os.Stat(targetFile); err != nil {
		t.Fatalf("expected scoped package target to exist: %v", err)
	}
}

func TestCleanupCountsAndRemoves(t *testing.T) {
	dest, err := os.MkdirTemp("", "node_modules-")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dest, "pkg"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "pkg", "index.js"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	stats, err := Cleanup(dest)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesRemoved != 1 {
		t.Fatalf("expected 1 file removed, got %d", stats.FilesRemoved)
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("expected destination to be fully removed")
	}
}

func TestCleanupOnMissingPathIsNoop(t *testing.T) {
	stats, err := Cleanup("/nonexistent/path/for/sure")
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesRemoved != 0 || stats.DirectoriesRemoved != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
