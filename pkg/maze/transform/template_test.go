package transform

import (
	"math/rand"
	"testing"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/maze/algo"
)

func TestTemplateRemoveEdge(t *testing.T) {
	g := rect(t, 4, 4)
	tpl := NewTemplate(g)

	a, b := g.At(1, 1), g.At(1, 2)
	if !tpl.RemoveEdge(a, maze.East) {
		t.Fatal("RemoveEdge refused an unlinked pair")
	}
	if a.Neighbor(maze.East) != nil {
		t.Error("east slot of (1,1) survived removal")
	}
	if b.Neighbor(maze.West) != nil {
		t.Error("west slot of (1,2) survived removal")
	}

	tpl.Reinstate()
	if a.Neighbor(maze.East) != b {
		t.Error("east slot of (1,1) not restored")
	}
	if b.Neighbor(maze.West) != a {
		t.Error("west slot of (1,2) not restored")
	}
}

func TestTemplateRemoveEdgeRefusesLinkedPair(t *testing.T) {
	g := rect(t, 4, 4)
	if err := g.Link(g.At(1, 1), g.At(1, 2)); err != nil {
		t.Fatal(err)
	}
	tpl := NewTemplate(g)
	if tpl.RemoveEdge(g.At(1, 1), maze.East) {
		t.Error("RemoveEdge removed a carved passage")
	}
	if tpl.RemoveArc(g.At(1, 1), maze.East) {
		t.Error("RemoveArc removed a carved passage")
	}
	if g.At(1, 1).Neighbor(maze.East) != g.At(1, 2) {
		t.Error("refused removal still mutated the slot")
	}
}

func TestTemplateRemoveArcIsOneWay(t *testing.T) {
	g := rect(t, 4, 4)
	tpl := NewTemplate(g)

	a, b := g.At(2, 2), g.At(2, 3)
	if !tpl.RemoveArc(a, maze.East) {
		t.Fatal("RemoveArc refused an unlinked pair")
	}
	if a.Neighbor(maze.East) != nil {
		t.Error("forward slot survived one-way removal")
	}
	if b.Neighbor(maze.West) != a {
		t.Error("reverse slot lost on one-way removal")
	}

	tpl.Reinstate()
	if a.Neighbor(maze.East) != b {
		t.Error("forward slot not restored")
	}
}

func TestTemplateRemoveCell(t *testing.T) {
	g := rect(t, 4, 4)
	tpl := NewTemplate(g)

	cell := g.At(2, 2)
	if err := g.Link(cell, g.At(2, 1)); err != nil {
		t.Fatal(err)
	}
	if tpl.RemoveCell(cell) {
		t.Error("RemoveCell detached a cell carrying a passage")
	}
	g.Unlink(cell, g.At(2, 1))

	if !tpl.RemoveCell(cell) {
		t.Fatal("RemoveCell refused an unlinked cell")
	}
	if g.At(2, 2) != nil {
		t.Error("cell still addressable after removal")
	}
	if g.At(2, 1).Neighbor(maze.East) != nil {
		t.Error("neighbor slot still points at the removed cell")
	}

	tpl.Reinstate()
	back := g.At(2, 2)
	if back != cell {
		t.Fatalf("reinstated cell = %v, want the original", back)
	}
	// Reinstated cells come back isolated.
	if len(back.Neighbors()) != 0 {
		t.Errorf("reinstated cell has %d neighbors, want 0", len(back.Neighbors()))
	}
	if g.At(2, 1).Neighbor(maze.East) != nil {
		t.Error("former neighbor edge resurrected by reinstatement")
	}
}

func TestVerticalWallKeepsSinkDoorway(t *testing.T) {
	g := rect(t, 6, 6)
	tpl := NewTemplate(g)
	sink := g.At(3, 2)
	tpl.VerticalWall(0, 5, 2, sink)

	for i := 0; i < 6; i++ {
		cell := g.At(i, 2)
		east := cell.Neighbor(maze.East)
		if i == 3 {
			if east == nil {
				t.Error("doorway at the sink was walled over")
			}
			continue
		}
		if east != nil {
			t.Errorf("row %d: east edge of column 2 survived the wall", i)
		}
		if g.At(i, 3).Neighbor(maze.West) != nil {
			t.Errorf("row %d: west edge of column 3 survived the wall", i)
		}
	}
}

func TestOrientedWallEndpoints(t *testing.T) {
	g := rect(t, 8, 8)
	tpl := NewTemplate(g)

	r, c := tpl.OrientedWall(2, 1, maze.East, 4, nil)
	if r != 2 || c != 4 {
		t.Errorf("east wall endpoint = (%d,%d), want (2,4)", r, c)
	}
	for j := 1; j <= 4; j++ {
		if g.At(2, j).Neighbor(maze.North) != nil {
			t.Errorf("north edge at (2,%d) survived the east wall", j)
		}
	}

	r, c = tpl.OrientedWall(3, 6, maze.North, 3, nil)
	if r != 5 || c != 6 {
		t.Errorf("north wall endpoint = (%d,%d), want (5,6)", r, c)
	}
	for i := 3; i <= 5; i++ {
		if g.At(i, 6).Neighbor(maze.East) != nil {
			t.Errorf("east edge at (%d,6) survived the north wall", i)
		}
	}
}

func TestRoomsLeaveDoorways(t *testing.T) {
	g := rect(t, 12, 12)
	tpl := NewTemplate(g)
	if err := tpl.Rooms(rand.New(rand.NewSource(21)), RoomsConfig{}); err != nil {
		t.Fatal(err)
	}

	_, _, neighbors := maze.EulerCounts(g)
	if neighbors >= 2*(12*11*2) {
		t.Error("room walls removed no adjacency")
	}

	// Every wall keeps a doorway, so a carver still spans the grid.
	if err := algo.RecursiveBacktracker(g, rand.New(rand.NewSource(21))); err != nil {
		t.Fatal(err)
	}
	c := maze.TakeCensus(g)
	if c.Components != 1 || c.Characteristic() != 0 {
		t.Errorf("census after rooms+carve = %+v, want a spanning tree", c)
	}
}

func TestRoomsExitNoneSealsRooms(t *testing.T) {
	g := rect(t, 9, 9)
	tpl := NewTemplate(g)
	cfg := RoomsConfig{ExitVertical: ExitNone, ExitHorizontal: ExitNone}
	if err := tpl.Rooms(rand.New(rand.NewSource(5)), cfg); err != nil {
		t.Fatal(err)
	}

	// Sealed walls partition the adjacency; a forest builder spans
	// each room separately.
	if err := algo.Kruskal(g, rand.New(rand.NewSource(5)), nil); err != nil {
		t.Fatal(err)
	}
	c := maze.TakeCensus(g)
	if c.Components < 2 {
		t.Errorf("components = %d, want at least 2 sealed rooms", c.Components)
	}
	if c.Characteristic() != 0 {
		t.Errorf("v-e-k = %d, want 0", c.Characteristic())
	}
}

func TestRoomsExitPolicies(t *testing.T) {
	// High and low policies place doorways at the region's ends; the
	// carved maze must still span regardless of policy mix.
	policies := []ExitPolicy{ExitHigh, ExitMedian, ExitLow}
	for _, p := range policies {
		g := rect(t, 10, 10)
		tpl := NewTemplate(g)
		cfg := RoomsConfig{ExitVertical: p, ExitHorizontal: p}
		if err := tpl.Rooms(rand.New(rand.NewSource(3)), cfg); err != nil {
			t.Fatalf("policy %c: %v", p, err)
		}
		if err := algo.RecursiveBacktracker(g, rand.New(rand.NewSource(3))); err != nil {
			t.Fatalf("policy %c: %v", p, err)
		}
		c := maze.TakeCensus(g)
		if c.Components != 1 || c.Characteristic() != 0 {
			t.Errorf("policy %c: census = %+v, want a spanning tree", p, c)
		}
	}
}

func TestRoomsRefuseNonRectangularFamilies(t *testing.T) {
	polar, err := maze.NewPolar(4, maze.PolarConfig{})
	if err != nil {
		t.Fatal(err)
	}
	tpl := NewTemplate(polar)
	if err := tpl.Rooms(rand.New(rand.NewSource(1)), RoomsConfig{}); !errors.Is(err, errors.ErrCodeUnsupportedTopology) {
		t.Errorf("Rooms on polar grid error = %v, want UNSUPPORTED_TOPOLOGY", err)
	}
}

func TestSpiralFitValidation(t *testing.T) {
	g := rect(t, 7, 7)
	tpl := NewTemplate(g)
	if err := tpl.Spiral(3, 3, 5, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversized spiral error = %v, want INVALID_INPUT", err)
	}
	if err := tpl.Spiral(1, 3, 2, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("off-center spiral error = %v, want INVALID_INPUT", err)
	}
}

func TestSpiralBuildsAndReinstates(t *testing.T) {
	g := rect(t, 11, 11)
	_, _, before := maze.EulerCounts(g)

	tpl := NewTemplate(g)
	if err := tpl.Spiral(5, 5, 3, false); err != nil {
		t.Fatal(err)
	}
	_, _, walled := maze.EulerCounts(g)
	if walled >= before {
		t.Fatalf("neighbor count %d after spiral, want below %d", walled, before)
	}

	tpl.Reinstate()
	_, _, after := maze.EulerCounts(g)
	if after != before {
		t.Errorf("neighbor count = %d after reinstating, want %d", after, before)
	}
}

func TestSpiralKeepsGridCarvable(t *testing.T) {
	for _, clockwise := range []bool{false, true} {
		g := rect(t, 13, 13)
		tpl := NewTemplate(g)
		if err := tpl.Spiral(6, 6, 4, clockwise); err != nil {
			t.Fatal(err)
		}
		if err := algo.RecursiveBacktracker(g, rand.New(rand.NewSource(17))); err != nil {
			t.Fatalf("clockwise=%v: %v", clockwise, err)
		}
		c := maze.TakeCensus(g)
		if c.Components != 1 || c.Characteristic() != 0 {
			t.Errorf("clockwise=%v: census = %+v, want a spanning tree", clockwise, c)
		}
	}
}
