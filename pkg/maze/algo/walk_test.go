package algo

import (
	"math/rand"
	"testing"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

func TestLoopErasedWalkIsSimple(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := rect(t, 6, 6)
		goal := g.At(5, 5)
		visited := map[*maze.Cell]bool{goal: true}
		start := g.At(0, 0)

		path := loopErasedWalk(g, rand.New(rand.NewSource(seed)), start, visited)
		if len(path) < 2 {
			t.Fatalf("seed %d: path too short: %d", seed, len(path))
		}
		if path[0] != start {
			t.Errorf("seed %d: path starts at %s, want (0,0)", seed, path[0].Index())
		}
		if !visited[path[len(path)-1]] {
			t.Errorf("seed %d: path does not end on the visited region", seed)
		}
		seen := map[*maze.Cell]bool{}
		for i, c := range path {
			if seen[c] {
				t.Fatalf("seed %d: cell %s appears twice, loop not erased", seed, c.Index())
			}
			seen[c] = true
			if i > 0 && path[i-1].DirectionTo(c) == "" {
				t.Fatalf("seed %d: step %s-%s is not an adjacency", seed, path[i-1].Index(), c.Index())
			}
		}
	}
}

func TestDeferredCommitWalkersRefuseWeave(t *testing.T) {
	// Linking one committed pair on a weave grid can tunnel under a
	// platform and break the adjacency a later pair relies on, and
	// the undercell it creates grows the grid mid-run. The walkers
	// that separate walking from carving must bail out up front and
	// leave the grid exactly as they found it.
	runs := map[string]Func{
		"wilson":                Wilson,
		"reverse-aldous-broder": ReverseAldousBroder,
		"hybrid-walk": func(g *maze.Grid, rng *rand.Rand) error {
			return HybridWalk(g, rng, HybridWalkConfig{})
		},
	}
	for name, run := range runs {
		for seed := int64(0); seed < 10; seed++ {
			g, err := maze.NewWeave(6, 6)
			if err != nil {
				t.Fatal(err)
			}
			err = run(g, rand.New(rand.NewSource(seed)))
			if !errors.Is(err, errors.ErrCodeUnsupportedTopology) {
				t.Fatalf("%s seed %d: error = %v, want UNSUPPORTED_TOPOLOGY", name, seed, err)
			}
			if got := g.LinkCount(); got != 0 {
				t.Errorf("%s seed %d: LinkCount() = %d after refusal, want 0", name, seed, got)
			}
			if got := g.Size(); got != 36 {
				t.Errorf("%s seed %d: Size() = %d after refusal, want 36", name, seed, got)
			}
		}
	}
}

func TestWalkersAcceptPreweave(t *testing.T) {
	// Preweave tunnels are fixed before generation, so the deferred
	// commits stay valid and the carve must still span the grid.
	g, err := maze.NewPreweave(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := Wilson(g, rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("Wilson on preweave: %v", err)
	}
	c := maze.TakeCensus(g)
	if c.Components != 1 || c.Characteristic() != 0 {
		t.Errorf("census = %+v, want a spanning tree", c)
	}
}

func TestReverseAldousBroderCarvesOnePassagePerCell(t *testing.T) {
	g := rect(t, 7, 7)
	if err := ReverseAldousBroder(g, rand.New(rand.NewSource(13))); err != nil {
		t.Fatalf("ReverseAldousBroder: %v", err)
	}
	assertPerfect(t, g)
	// Last-exit carving records exactly one exit for every cell but
	// the walk's final cell: v-1 passages.
	if got := g.LinkCount(); got != 48 {
		t.Errorf("LinkCount() = %d, want 48", got)
	}
}

func TestHybridWalkCutoff(t *testing.T) {
	// Extreme cutoffs degenerate into the pure algorithms; both ends
	// must still span.
	for _, cutoff := range []float64{0.01, 0.5, 1} {
		g := rect(t, 6, 8)
		err := HybridWalk(g, rand.New(rand.NewSource(21)), HybridWalkConfig{Cutoff: cutoff})
		if err != nil {
			t.Fatalf("cutoff %g: %v", cutoff, err)
		}
		assertPerfect(t, g)
	}

	g := rect(t, 4, 4)
	err := HybridWalk(g, rand.New(rand.NewSource(1)), HybridWalkConfig{Cutoff: 1.5})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("cutoff 1.5 error = %v, want INVALID_INPUT", err)
	}
}
