package maze

import "testing"

func TestTakeCensus(t *testing.T) {
	g, _ := NewRectangular(2, 3)
	c := TakeCensus(g)
	if c.Cells != 6 || c.Passages != 0 || c.Components != 6 || c.Isolated != 6 {
		t.Errorf("blank census = %+v", c)
	}
	if c.Characteristic() != 0 {
		t.Errorf("blank Characteristic() = %d, want 0", c.Characteristic())
	}

	// A spanning corridor: v − e − k = 6 − 5 − 1 = 0.
	g.Link(g.At(0, 0), g.At(0, 1))
	g.Link(g.At(0, 1), g.At(0, 2))
	g.Link(g.At(0, 2), g.At(1, 2))
	g.Link(g.At(1, 2), g.At(1, 1))
	g.Link(g.At(1, 1), g.At(1, 0))
	c = TakeCensus(g)
	if c.Passages != 5 || c.Components != 1 {
		t.Errorf("corridor census = %+v", c)
	}
	if c.Characteristic() != 0 {
		t.Errorf("tree Characteristic() = %d, want 0", c.Characteristic())
	}
	if c.DeadEnds != 2 || c.Isolated != 0 {
		t.Errorf("corridor texture = %+v", c)
	}

	// Closing a circuit drives the characteristic negative.
	g.Link(g.At(0, 0), g.At(1, 0))
	c = TakeCensus(g)
	if c.Characteristic() != -1 {
		t.Errorf("circuit Characteristic() = %d, want -1", c.Characteristic())
	}
	if c.DeadEnds != 0 {
		t.Errorf("circuit dead ends = %d, want 0", c.DeadEnds)
	}
}

func TestDegreeCounts(t *testing.T) {
	g, _ := NewRectangular(1, 4)
	for j := 0; j < 3; j++ {
		g.Link(g.At(0, j), g.At(0, j+1))
	}
	counts := DegreeCounts(g)
	if counts[1] != 2 || counts[2] != 2 {
		t.Errorf("DegreeCounts() = %v, want 2 ends and 2 corridor cells", counts)
	}
}

func TestEulerCounts(t *testing.T) {
	g, _ := NewRectangular(2, 2)
	passages, walls, neighbors := EulerCounts(g)
	// 4 undirected potential edges, each counted from both ends.
	if neighbors != 8 {
		t.Errorf("neighbors = %d, want 8", neighbors)
	}
	if passages != 0 || walls != 8 {
		t.Errorf("blank counts = (%d passages, %d walls)", passages, walls)
	}

	g.Link(g.At(0, 0), g.At(0, 1))
	passages, walls, neighbors = EulerCounts(g)
	if passages != 2 || walls != 6 || neighbors != 8 {
		t.Errorf("counts = (%d, %d, %d), want (2, 6, 8)", passages, walls, neighbors)
	}
}
