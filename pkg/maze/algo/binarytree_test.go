package algo

import (
	"math/rand"
	"testing"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

func TestBinaryTreeCorridors(t *testing.T) {
	g := rect(t, 20, 30)
	if err := BinaryTree(g, rand.New(rand.NewSource(1)), BinaryTreeConfig{}); err != nil {
		t.Fatalf("BinaryTree: %v", err)
	}
	assertPerfect(t, g)
	c := maze.TakeCensus(g)
	if c.Cells != 600 || c.Passages != 599 {
		t.Errorf("census = (%d cells, %d passages), want (600, 599)", c.Cells, c.Passages)
	}

	// The top row and rightmost column are unbroken corridors: cells
	// there have only one carve candidate.
	for j := 0; j < 29; j++ {
		if !g.At(19, j).LinkedTo(maze.East) {
			t.Errorf("top row cell (19,%d) is not linked east", j)
		}
	}
	for i := 0; i < 19; i++ {
		if !g.At(i, 29).LinkedTo(maze.North) {
			t.Errorf("rightmost column cell (%d,29) is not linked north", i)
		}
	}
}

func TestBinaryTreeBiasValidation(t *testing.T) {
	g := rect(t, 4, 4)
	err := BinaryTree(g, rand.New(rand.NewSource(1)), BinaryTreeConfig{Bias: 1.5})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bias 1.5 error = %v, want INVALID_INPUT", err)
	}
}

func TestBinaryTreeCylinderRows(t *testing.T) {
	g, err := maze.NewCylinder(6, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := BinaryTreeCylinder(g, rand.New(rand.NewSource(5)), BinaryTreeConfig{}); err != nil {
		t.Fatalf("BinaryTreeCylinder: %v", err)
	}
	assertPerfect(t, g)

	// No row may close into a circuit: each row has at most cols-1
	// lateral passages.
	for i := 0; i < 6; i++ {
		lateral := 0
		for j := 0; j < 8; j++ {
			if g.At(i, j).LinkedTo(maze.East) {
				lateral++
			}
		}
		if lateral > 7 {
			t.Errorf("row %d carved %d lateral passages, circuit closed", i, lateral)
		}
	}
	// Every row below the top must reach the row above.
	for i := 0; i < 5; i++ {
		up := 0
		for j := 0; j < 8; j++ {
			if g.At(i, j).LinkedTo(maze.North) {
				up++
			}
		}
		if up == 0 {
			t.Errorf("row %d has no passage to row %d", i, i+1)
		}
	}
}

func TestBinaryTreePolarLatitudes(t *testing.T) {
	g, err := maze.NewPolar(5, maze.PolarConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if err := BinaryTreePolar(g, rand.New(rand.NewSource(11)), BinaryTreeConfig{}); err != nil {
		t.Fatalf("BinaryTreePolar: %v", err)
	}
	assertPerfect(t, g)

	// No latitude may close into a ring circuit.
	for i := 1; i < 5; i++ {
		n := g.RingSize(i)
		lateral := 0
		for j := 0; j < n; j++ {
			if g.At(i, j).LinkedTo(maze.CounterClockwise) {
				lateral++
			}
		}
		if lateral >= n {
			t.Errorf("latitude %d closed into a circuit", i)
		}
	}
}

// Binary tree mazes route every cell toward the northeast corner, so
// their diameter is capped near 2(rows+cols); depth-first search has
// no such cap. Seeds are scanned deterministically because a single
// unlucky draw can leave a short depth-first diameter.
func TestBacktrackerBeatsBinaryTreeDiameter(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		bt := rect(t, 5, 7)
		if err := BinaryTree(bt, rand.New(rand.NewSource(seed)), BinaryTreeConfig{}); err != nil {
			t.Fatal(err)
		}
		dfs := rect(t, 5, 7)
		if err := RecursiveBacktracker(dfs, rand.New(rand.NewSource(seed))); err != nil {
			t.Fatal(err)
		}
		_, btDiam := maze.LongestPath(bt, nil)
		_, dfsDiam := maze.LongestPath(dfs, nil)
		if btDiam > 2*(5+7-2) {
			t.Fatalf("seed %d: binary tree diameter %d exceeds the corner bound", seed, btDiam)
		}
		if dfsDiam > btDiam {
			return // found the expected separation
		}
	}
	t.Error("no seed in range produced a deeper backtracker maze than binary tree")
}
