package dot

import (
	"math"
	"strings"
	"testing"

	"github.com/mazekit/mazekit/pkg/maze"
)

func TestGraph_Basic(t *testing.T) {
	g, err := maze.NewRectangular(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Link(g.At(0, 0), g.At(0, 1)); err != nil {
		t.Fatal(err)
	}

	dot := Graph(g, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("Graph() output missing digraph declaration")
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("Graph() output missing neato layout")
	}
	if !strings.Contains(dot, `"c0x0" [pos="0.000,0.000!"`) {
		t.Error("Graph() output missing pinned origin node")
	}
	if !strings.Contains(dot, `"c0x0" -> "c0x1"`) {
		t.Error("Graph() output missing carved passage edge")
	}
	if strings.Contains(dot, `"c1x0" -> "c1x1"`) {
		t.Error("Graph() output has an edge for an uncarved passage")
	}
}

func TestGraph_EdgesEmittedOnce(t *testing.T) {
	g, err := maze.NewRectangular(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Link(g.At(0, 0), g.At(1, 0)); err != nil {
		t.Fatal(err)
	}

	dot := Graph(g, Options{})
	forward := strings.Count(dot, `"c0x0" -> "c1x0"`)
	backward := strings.Count(dot, `"c1x0" -> "c0x0"`)
	if forward+backward != 1 {
		t.Errorf("passage emitted %d times, want once", forward+backward)
	}
}

func TestGraph_OneWayArc(t *testing.T) {
	g, err := maze.NewRectangular(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.LinkOneWay(g.At(0, 0), g.At(0, 1)); err != nil {
		t.Fatal(err)
	}

	dot := Graph(g, Options{})
	if !strings.Contains(dot, `"c0x0" -> "c0x1" [dir=forward]`) {
		t.Error("Graph() output missing arrowed one-way arc")
	}
}

func TestGraph_ShowGrid(t *testing.T) {
	g, err := maze.NewRectangular(2, 2)
	if err != nil {
		t.Fatal(err)
	}

	plain := Graph(g, Options{})
	if strings.Contains(plain, "dashed") {
		t.Error("Graph() draws grid edges without ShowGrid")
	}

	dot := Graph(g, Options{ShowGrid: true})
	// 4 potential edges, none carved
	if got := strings.Count(dot, "style=dashed"); got != 4 {
		t.Errorf("Graph() has %d dashed grid edges, want 4", got)
	}
}

func TestGraph_Labels(t *testing.T) {
	g, err := maze.NewRectangular(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	dot := Graph(g, Options{Labels: true})
	if !strings.Contains(dot, `label="(0,0)"`) {
		t.Error("Graph() output missing coordinate label")
	}
}

func TestGraph_WeaveUndercell(t *testing.T) {
	g, err := maze.NewWeave(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	mid := g.At(1, 1)
	for _, nbr := range []*maze.Cell{g.At(1, 0), g.At(1, 2)} {
		if err := g.Link(mid, nbr); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Link(g.At(0, 1), g.At(2, 1)); err != nil {
		t.Fatal(err)
	}

	dot := Graph(g, Options{})
	if !strings.Contains(dot, `"u1x1"`) {
		t.Error("Graph() output missing undercell node")
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("Graph() undercell missing grey fill")
	}
}

func TestPositionPolarRingRadius(t *testing.T) {
	g, err := maze.NewPolar(3, maze.PolarConfig{})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range g.Cells() {
		x, y := position(g, c)
		r := math.Hypot(x, y)
		want := float64(c.Index().Row) + 0.5
		if c.Index().Row == 0 {
			want = 0
		}
		if math.Abs(r-want) > 1e-9 {
			t.Errorf("radius of %v = %v, want %v", c.Index(), r, want)
		}
	}
}

func TestPositionMultilevelFloorsSideBySide(t *testing.T) {
	g, err := maze.NewMultilevel(3, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	var maxFloor0, minFloor1 float64 = -1, math.MaxFloat64
	for _, c := range g.Cells() {
		x, _ := position(g, c)
		switch c.Index().Level {
		case 0:
			if x > maxFloor0 {
				maxFloor0 = x
			}
		case 1:
			if x < minFloor1 {
				minFloor1 = x
			}
		}
	}
	if maxFloor0 >= minFloor1 {
		t.Errorf("floor 0 extends to x=%v, floor 1 starts at x=%v, want a gap", maxFloor0, minFloor1)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalizeViewBox() = %q, want rebased viewBox", out)
	}
	if !strings.Contains(out, `xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("normalizeViewBox() dropped the xmlns declaration")
	}
}
