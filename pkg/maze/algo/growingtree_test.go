package algo

import (
	"math/rand"
	"testing"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

func TestGrowingTreeDisciplines(t *testing.T) {
	disciplines := []struct {
		name string
		d    VertexDiscipline
	}{
		{"random", CostRandom},
		{"uniform", CostUniform},
		{"lifo", CostLIFO},
		{"fifo", CostFIFO},
	}
	for _, tt := range disciplines {
		t.Run(tt.name, func(t *testing.T) {
			g := rect(t, 7, 9)
			if err := GrowingTree(g, rand.New(rand.NewSource(73)), GrowingTreeConfig{Discipline: tt.d}); err != nil {
				t.Fatalf("GrowingTree: %v", err)
			}
			assertPerfect(t, g)
		})
	}
}

func TestGrowingTreeTextureExtremes(t *testing.T) {
	// LIFO pricing plunges like depth-first search; FIFO spreads in
	// waves like breadth-first search. The breadth-first texture has
	// far more dead ends.
	var lEnds, fEnds int
	for seed := int64(0); seed < 5; seed++ {
		lifo := rect(t, 10, 10)
		if err := GrowingTree(lifo, rand.New(rand.NewSource(seed)), GrowingTreeConfig{Discipline: CostLIFO}); err != nil {
			t.Fatal(err)
		}
		fifo := rect(t, 10, 10)
		if err := GrowingTree(fifo, rand.New(rand.NewSource(seed)), GrowingTreeConfig{Discipline: CostFIFO}); err != nil {
			t.Fatal(err)
		}
		lEnds += len(lifo.DeadEnds())
		fEnds += len(fifo.DeadEnds())
	}
	if lEnds >= fEnds {
		t.Errorf("dead ends: lifo %d, fifo %d; expected the wave texture to branch more", lEnds, fEnds)
	}
}

func TestEdgeGrowingTreeDisciplines(t *testing.T) {
	disciplines := []struct {
		name string
		cfg  EdgeGrowingTreeConfig
	}{
		{"lifo", EdgeGrowingTreeConfig{Discipline: EdgeLIFO}},
		{"fifo", EdgeGrowingTreeConfig{Discipline: EdgeFIFO}},
		{"mifo", EdgeGrowingTreeConfig{Discipline: EdgeMIFO}},
		{"rifo", EdgeGrowingTreeConfig{Discipline: EdgeRIFO}},
		{"mixed", EdgeGrowingTreeConfig{Discipline: EdgeMixed, Bias: 0.75}},
	}
	for _, tt := range disciplines {
		t.Run(tt.name, func(t *testing.T) {
			g := rect(t, 7, 9)
			if err := EdgeGrowingTree(g, rand.New(rand.NewSource(83)), tt.cfg); err != nil {
				t.Fatalf("EdgeGrowingTree: %v", err)
			}
			assertPerfect(t, g)
		})
	}
}

func TestEdgeGrowingTreeMixedBiasValidation(t *testing.T) {
	g := rect(t, 4, 4)
	cfg := EdgeGrowingTreeConfig{Discipline: EdgeMixed, Bias: 3}
	if err := EdgeGrowingTree(g, rand.New(rand.NewSource(1)), cfg); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bias 3 error = %v, want INVALID_INPUT", err)
	}
}

func TestGrowingTreeOnWeave(t *testing.T) {
	// Frontier candidates on a weave grid can be severed by earlier
	// carves; growth must recover instead of stalling.
	g, err := maze.NewWeave(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := GrowingTree(g, rand.New(rand.NewSource(89)), GrowingTreeConfig{Discipline: CostRandom}); err != nil {
		t.Fatalf("GrowingTree on weave: %v", err)
	}
	assertPerfect(t, g)
}

func TestPrimWeighted(t *testing.T) {
	// A uniquely cheap edge must always be in the tree, since Prim
	// carves the cheapest frontier crossing and every edge crosses
	// the frontier at some point or closes a circuit.
	g := rect(t, 5, 5)
	cheapA, cheapB := g.At(2, 2), g.At(2, 3)
	weight := func(a, b *maze.Cell) float64 {
		if (a == cheapA && b == cheapB) || (a == cheapB && b == cheapA) {
			return 0
		}
		return 1 + float64((a.Index().Row*10+a.Index().Col)*100+b.Index().Row*10+b.Index().Col)
	}
	if err := Prim(g, rand.New(rand.NewSource(97)), PrimConfig{Weight: weight}); err != nil {
		t.Fatalf("Prim: %v", err)
	}
	assertPerfect(t, g)
	if !cheapA.Linked(cheapB) {
		t.Error("the uniquely cheapest edge was not carved")
	}
}
