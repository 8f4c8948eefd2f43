package resolver

import (
	"context"
	"testing"

	"github.com/arko-martian/peacore/internal/registry"
	"github.com/arko-martian/peacore/manifest"
)

func seedPackage(adapter *registry.MemoryAdapter, name string, versions map[string]manifest.RegistryVersion) {
	adapter.Seed(name, &manifest.RegistryMetadata{Name: name, Versions: versions})
}

func TestResolveSingleRoot(t *testing.T) {
	adapter := registry.NewMemoryAdapter()
	seedPackage(adapter, "a", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0"},
		"1.2.3": {Version: "1.2.3"},
		"2.0.0": {Version: "2.0.0"},
	})

	r := New(adapter)
	result, err := r.Resolve(context.Background(), []Root{{Name: "a", Req: "^1.0.0"}}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if result.PackageCount != 1 {
		t.Fatalf("expected 1 package, got %d", result.PackageCount)
	}
	nodes := result.Graph.Packages()
	if nodes[0].Version != "1.2.3" {
		t.Fatalf("expected 1.2.3 selected, got %s", nodes[0].Version)
	}
}

func TestResolveTransitive(t *testing.T) {
	adapter := registry.NewMemoryAdapter()
	seedPackage(adapter, "a", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0", Dependencies: map[string]string{"b": "~2.1.0"}},
	})
	seedPackage(adapter, "b", map[string]manifest.RegistryVersion{
		"2.1.0": {Version: "2.1.0"},
		"2.1.5": {Version: "2.1.5"},
		"2.2.0": {Version: "2.2.0"},
	})

	r := New(adapter)
	result, err := r.Resolve(context.Background(), []Root{{Name: "a", Req: "^1.0.0"}}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if result.PackageCount != 2 {
		t.Fatalf("expected 2 packages, got %d", result.PackageCount)
	}

	order, err := result.Graph.TopologicalSort()
	if err != nil {
		t.Fatal(err)
	}
	if order[0].Name != "a" || order[1].Name != "b" {
		t.Fatalf("expected a before b, got %v", order)
	}
}

func TestResolveDetectsCycle(t *testing.T) {
	adapter := registry.NewMemoryAdapter()
	seedPackage(adapter, "a", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0", Dependencies: map[string]string{"b": "*"}},
	})
	seedPackage(adapter, "b", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0", Dependencies: map[string]string{"c": "*"}},
	})
	seedPackage(adapter, "c", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0", Dependencies: map[string]string{"a": "*"}},
	})

	r := New(adapter)
	_, err := r.Resolve(context.Background(), []Root{{Name: "a", Req: "*"}}, Options{})
	if err == nil {
		t.Fatal("expected circular dependency error")
	}
}

func TestResolveWorkspaceMember(t *testing.T) {
	adapter := registry.NewMemoryAdapter()

	r := New(adapter)
	result, err := r.Resolve(context.Background(), []Root{{Name: "local-pkg", Req: "*"}}, Options{
		Workspace: map[string]string{"local-pkg": "/repo/packages/local-pkg"},
	})
	if err != nil {
		t.Fatal(err)
	}

	nodes := result.Graph.Packages()
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Integrity != "workspace" || nodes[0].Version != "0.0.0" {
		t.Fatalf("unexpected workspace node: %+v", nodes[0])
	}
}

func TestResolveOptionalDependencyFeatureGating(t *testing.T) {
	adapter := registry.NewMemoryAdapter()
	seedPackage(adapter, "a", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0", OptionalDependencies: map[string]string{"fsevents": "^1.0.0"}},
	})
	seedPackage(adapter, "fsevents", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0"},
	})

	r := New(adapter)
	result, err := r.Resolve(context.Background(), []Root{{Name: "a", Req: "^1.0.0"}}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.PackageCount != 1 {
		t.Fatalf("expected optional dependency to stay unresolved without the feature enabled, got %d packages", result.PackageCount)
	}

	r2 := New(adapter)
	result2, err := r2.Resolve(context.Background(), []Root{{Name: "a", Req: "^1.0.0"}}, Options{
		EnabledFeatures: map[string]bool{"fsevents": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result2.PackageCount != 2 {
		t.Fatalf("expected optional dependency to resolve once its feature is enabled, got %d packages", result2.PackageCount)
	}
}

func TestResolveNoMatchingVersion(t *testing.T) {
	adapter := registry.NewMemoryAdapter()
	seedPackage(adapter, "a", map[string]manifest.RegistryVersion{
		"1.0.0": {Version: "1.0.0"},
	})

	r := New(adapter)
	_, err := r.Resolve(context.Background(), []Root{{Name: "a", Req: "^2.0.0"}}, Options{})
	if err == nil {
		t.Fatal("expected version conflict error")
	}
}
