package algo

import (
	"math/rand"
	"testing"

	"github.com/mazekit/mazekit/pkg/maze"
)

func TestRecursiveDivisionVariants(t *testing.T) {
	tests := []struct {
		name string
		cfg  DivisionConfig
	}{
		{"default", DivisionConfig{}},
		{"golden", DivisionConfig{Golden: true}},
		{"fine", DivisionConfig{Delta: 2}},
		{"coarse", DivisionConfig{Delta: 6}},
		{"backtracker delegate", DivisionConfig{Delegate: RecursiveBacktracker}},
		{"delegate pool", DivisionConfig{Delegates: []Func{
			RecursiveBacktracker,
			func(g *maze.Grid, rng *rand.Rand) error {
				return Sidewinder(g, rng, SidewinderConfig{})
			},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rect(t, 9, 12)
			if err := RecursiveDivision(g, rand.New(rand.NewSource(61)), tt.cfg); err != nil {
				t.Fatalf("RecursiveDivision: %v", err)
			}
			assertPerfect(t, g)
		})
	}
}

func TestRecursiveDivisionSinglePartition(t *testing.T) {
	// A delta above the grid diameter means no cut at all: the whole
	// grid goes to the default sidewinder delegate, whose top-row
	// corridor shows through.
	g := rect(t, 5, 6)
	if err := RecursiveDivision(g, rand.New(rand.NewSource(67)), DivisionConfig{Delta: 100}); err != nil {
		t.Fatalf("RecursiveDivision: %v", err)
	}
	assertPerfect(t, g)
	for j := 0; j < 5; j++ {
		if !g.At(4, j).LinkedTo(maze.East) {
			t.Errorf("top row cell (4,%d) is not linked east", j)
		}
	}
}

func TestRecursiveDivisionTinyGrids(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 5}, {5, 1}, {2, 2}} {
		g := rect(t, dims[0], dims[1])
		if err := RecursiveDivision(g, rand.New(rand.NewSource(71)), DivisionConfig{}); err != nil {
			t.Fatalf("RecursiveDivision on %dx%d: %v", dims[0], dims[1], err)
		}
		assertPerfect(t, g)
	}
}
