package maze

import "testing"

// zigzag carves a 3×3 serpentine corridor: a single path visiting
// every cell.
func zigzag(t *testing.T) *Grid {
	t.Helper()
	g, _ := NewRectangular(3, 3)
	link := func(a, b *Cell) {
		if err := g.Link(a, b); err != nil {
			t.Fatalf("link %s-%s: %v", a.Index(), b.Index(), err)
		}
	}
	link(g.At(0, 0), g.At(0, 1))
	link(g.At(0, 1), g.At(0, 2))
	link(g.At(0, 2), g.At(1, 2))
	link(g.At(1, 2), g.At(1, 1))
	link(g.At(1, 1), g.At(1, 0))
	link(g.At(1, 0), g.At(2, 0))
	link(g.At(2, 0), g.At(2, 1))
	link(g.At(2, 1), g.At(2, 2))
	return g
}

func TestDistancesFrom(t *testing.T) {
	g := zigzag(t)
	d := DistancesFrom(g.At(0, 0))

	if d.Reachable() != 9 {
		t.Errorf("Reachable() = %d, want 9", d.Reachable())
	}
	tests := []struct {
		row, col, want int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{1, 0, 5},
		{2, 2, 8},
	}
	for _, tt := range tests {
		got, ok := d.At(g.At(tt.row, tt.col))
		if !ok || got != tt.want {
			t.Errorf("At(%d,%d) = (%d, %v), want (%d, true)", tt.row, tt.col, got, ok, tt.want)
		}
	}

	far, n := d.Furthest()
	if far != g.At(2, 2) || n != 8 {
		t.Errorf("Furthest() = (%s, %d), want ((2,2), 8)", far.Index(), n)
	}
}

func TestDistancesUnreachable(t *testing.T) {
	g, _ := NewRectangular(2, 2)
	g.Link(g.At(0, 0), g.At(0, 1))
	d := DistancesFrom(g.At(0, 0))

	if d.Reachable() != 2 {
		t.Errorf("Reachable() = %d, want 2", d.Reachable())
	}
	if _, ok := d.At(g.At(1, 1)); ok {
		t.Error("cell in another component should be unreachable")
	}
	if p := d.PathTo(g.At(1, 1)); p != nil {
		t.Errorf("PathTo(unreachable) = %v, want nil", p)
	}
}

func TestPathTo(t *testing.T) {
	g := zigzag(t)
	d := DistancesFrom(g.At(0, 0))

	path := d.PathTo(g.At(1, 0))
	if len(path) != 6 {
		t.Fatalf("path length = %d, want 6", len(path))
	}
	if path[0] != g.At(0, 0) || path[len(path)-1] != g.At(1, 0) {
		t.Error("path endpoints are wrong")
	}
	// Every step follows a carved passage and descends the metric.
	for i := 1; i < len(path); i++ {
		if !path[i-1].Linked(path[i]) {
			t.Fatalf("path step %s-%s crosses a wall", path[i-1].Index(), path[i].Index())
		}
	}
	// Path to the root is the root alone.
	if p := d.PathTo(g.At(0, 0)); len(p) != 1 || p[0] != g.At(0, 0) {
		t.Errorf("PathTo(root) = %v, want [root]", p)
	}
}

func TestLongestPath(t *testing.T) {
	g := zigzag(t)
	// Starting anywhere, the double sweep finds the full serpentine.
	path, n := LongestPath(g, g.At(1, 1))
	if n != 8 {
		t.Errorf("longest path length = %d, want 8", n)
	}
	if len(path) != 9 {
		t.Errorf("longest path cells = %d, want 9", len(path))
	}
}
