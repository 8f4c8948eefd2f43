package graph

import "testing"

func node(name, version string) PackageNode {
	return PackageNode{Id: PackageId{Name: name, Version: version}, Name: name, Version: version}
}

func TestAddPackageIdempotent(t *testing.T) {
	g := New()
	n1 := g.AddPackage(node("a", "1.0.0"))
	n2 := g.AddPackage(node("a", "1.0.0"))
	if n1 != n2 {
		t.Fatal("expected idempotent insert to return identical node")
	}
	if g.PackageCount() != 1 {
		t.Fatalf("expected 1 package, got %d", g.PackageCount())
	}
}

func TestAddDependencyMissingEndpoint(t *testing.T) {
	g := New()
	a := g.AddPackage(node("a", "1.0.0"))
	err := g.AddDependency(a.Id, PackageId{Name: "b", Version: "1.0.0"}, DependencyEdge{})
	if err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}

func TestAcyclicTopologicalSort(t *testing.T) {
	g := New()
	a := g.AddPackage(node("a", "1.0.0"))
	b := g.AddPackage(node("b", "1.0.0"))
	c := g.AddPackage(node("c", "1.0.0"))

	must(t, g.AddDependency(a.Id, b.Id, DependencyEdge{}))
	must(t, g.AddDependency(b.Id, c.Id, DependencyEdge{}))

	if cycle := g.DetectCycles(); cycle != nil {
		t.Fatalf("expected no cycle, got %v", cycle)
	}

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatal(err)
	}

	pos := make(map[PackageId]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos[a.Id] >= pos[b.Id] || pos[b.Id] >= pos[c.Id] {
		t.Fatalf("expected a before b before c, got order %v", order)
	}
}

func TestDetectCycle(t *testing.T) {
	g := New()
	a := g.AddPackage(node("a", "1.0.0"))
	b := g.AddPackage(node("b", "1.0.0"))
	c := g.AddPackage(node("c", "1.0.0"))

	must(t, g.AddDependency(a.Id, b.Id, DependencyEdge{}))
	must(t, g.AddDependency(b.Id, c.Id, DependencyEdge{}))
	must(t, g.AddDependency(c.Id, a.Id, DependencyEdge{}))

	cycle := g.DetectCycles()
	if cycle == nil {
		t.Fatal("expected cycle to be detected")
	}

	if _, err := g.TopologicalSort(); err == nil {
		t.Fatal("expected topological sort to fail on cyclic graph")
	}

	formatted := FormatCycle(cycle)
	if formatted == "" {
		t.Fatal("expected non-empty formatted cycle")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
