package maze

import "testing"

func TestDisjointSet(t *testing.T) {
	g, _ := NewRectangular(2, 3)
	ds := NewDisjointSet(g)

	if ds.Count() != 6 {
		t.Fatalf("Count() = %d, want 6", ds.Count())
	}
	a, b, c := g.At(0, 0), g.At(0, 1), g.At(0, 2)
	if ds.Same(a, b) {
		t.Error("fresh sets should be disjoint")
	}

	if !ds.Union(a, b) {
		t.Error("first union should merge")
	}
	if ds.Union(a, b) {
		t.Error("repeated union should not merge")
	}
	if ds.Count() != 5 {
		t.Errorf("Count() = %d, want 5", ds.Count())
	}

	// Transitive closure.
	ds.Union(b, c)
	if !ds.Same(a, c) {
		t.Error("Same(a, c) = false after chained unions")
	}
	if ds.Find(a) != ds.Find(c) {
		t.Error("Find should agree across a merged set")
	}
	if ds.Find(a) == ds.Find(g.At(1, 0)) {
		t.Error("Find should differ across disjoint sets")
	}
}

func TestDisjointSetAdd(t *testing.T) {
	g, _ := NewWeave(3, 3)
	ds := NewDisjointSet(g)
	carved := g.At(1, 1)
	g.Link(carved, g.At(1, 0))
	g.Link(carved, g.At(1, 2))
	under, err := g.TunnelUnder(carved)
	if err != nil {
		t.Fatalf("TunnelUnder: %v", err)
	}

	if !ds.Add(under) {
		t.Error("Add of a fresh undercell should register it")
	}
	if ds.Add(under) {
		t.Error("Add of a registered cell should report false")
	}
	if ds.Count() != 10 {
		t.Errorf("Count() = %d, want 10", ds.Count())
	}
	if ds.Same(under, g.At(0, 1)) {
		t.Error("fresh undercell should be its own set")
	}
	ds.Union(under, g.At(0, 1))
	ds.Union(under, g.At(2, 1))
	if !ds.Same(g.At(0, 1), g.At(2, 1)) {
		t.Error("tunnel endpoints should join through the undercell")
	}
}

func TestDisjointSetUnknownCell(t *testing.T) {
	g, _ := NewRectangular(2, 2)
	ds := NewDisjointSet(g)
	stray := newCell(Index{Row: 9, Col: 9}, KindCell)

	if ds.Same(stray, g.At(0, 0)) {
		t.Error("unknown cell should not compare equal")
	}
	if ds.Find(stray) != nil {
		t.Error("Find of an unknown cell should be nil")
	}
	// Union auto-registers.
	if !ds.Union(stray, g.At(0, 0)) {
		t.Error("Union should register and merge an unknown cell")
	}
	if ds.Count() != 4 {
		t.Errorf("Count() = %d, want 4", ds.Count())
	}
}
