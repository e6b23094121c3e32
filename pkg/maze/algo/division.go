package algo

import (
	"math"
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// DivisionConfig parameterizes recursive division.
type DivisionConfig struct {
	// Delta is the diameter at which a partition stops dividing and
	// gets carved directly; the diameter of a rectangle is the
	// smaller of its side lengths. Delta 1 (the default) divides all
	// the way down to single rows and columns, whose spanning trees
	// are chains. Larger values leave room for the delegate to
	// impose a texture inside each minimal partition.
	Delta int
	// Delegate carves minimal partitions. It runs on a private
	// rectangular shadow grid of the partition's size whose passages
	// are then replayed onto the real grid. Nil means sidewinder.
	Delegate Func
	// Delegates, when non-empty, overrides Delegate with a random
	// pick per minimal partition, giving each chamber its own
	// texture.
	Delegates []Func
	// Golden constrains each cut to the middle golden-section band
	// of the longer side, so partitions stay well proportioned
	// instead of splintering.
	Golden bool
}

// divShape is a rectangle of cells, inclusive on both corners.
type divShape struct {
	r0, c0, r1, c1 int
}

func (s divShape) diameter() int {
	d := s.r1 - s.r0
	if s.c1-s.c0 < d {
		d = s.c1 - s.c0
	}
	return d + 1
}

// RecursiveDivision carves a maze by cutting the grid in two, again
// and again, opening one doorway through every cut. It is organized
// as a passage carver rather than the textbook wall adder: the grid
// starts devoid of passages and minimal partitions are carved by a
// delegate algorithm on a shadow grid. The division tree shows in
// the result as long straight walls with single doorways, a texture
// no other carver here produces.
func RecursiveDivision(g *maze.Grid, rng *rand.Rand, cfg DivisionConfig) error {
	if g.Topology() != maze.TopologyRectangular {
		return errors.New(errors.ErrCodeUnsupportedTopology,
			"recursive division cuts axis-parallel rectangles, not a %s grid", g.Topology())
	}
	delta := cfg.Delta
	if delta < 1 {
		delta = 1
	}

	var stack maze.Stack[divShape]
	stack.Push(divShape{0, 0, g.Rows() - 1, g.Cols() - 1})
	for stack.Len() > 0 {
		shape, _ := stack.Pop()
		if shape.diameter() <= delta {
			if err := carvePartition(g, rng, cfg, shape); err != nil {
				return err
			}
			continue
		}
		s1, s2, doorA, doorB := cut(rng, shape, cfg.Golden)
		if err := g.Link(g.At(doorA.Row, doorA.Col), g.At(doorB.Row, doorB.Col)); err != nil {
			return err
		}
		stack.Push(s1)
		stack.Push(s2)
	}
	return nil
}

// cut splits the shape across its longer side and picks the doorway
// cells straddling the wall.
func cut(rng *rand.Rand, s divShape, golden bool) (divShape, divShape, maze.Index, maze.Index) {
	span := func(lo, hi int) int {
		n := hi - lo + 1
		if golden {
			phi := (1 + math.Sqrt(5)) / 2
			a := int((1-(phi-1))*float64(n)) + 1
			b := int((phi - 1) * float64(n))
			if a < b {
				return lo + a + rng.Intn(b-a+1)
			}
			return lo + n/2
		}
		return lo + 1 + rng.Intn(n-1)
	}
	if s.r1-s.r0 > s.c1-s.c0 {
		r2 := span(s.r0, s.r1)
		c2 := s.c0 + rng.Intn(s.c1-s.c0+1)
		return divShape{s.r0, s.c0, r2 - 1, s.c1},
			divShape{r2, s.c0, s.r1, s.c1},
			maze.Index{Row: r2 - 1, Col: c2},
			maze.Index{Row: r2, Col: c2}
	}
	c2 := span(s.c0, s.c1)
	r2 := s.r0 + rng.Intn(s.r1-s.r0+1)
	return divShape{s.r0, s.c0, s.r1, c2 - 1},
		divShape{s.r0, c2, s.r1, s.c1},
		maze.Index{Row: r2, Col: c2 - 1},
		maze.Index{Row: r2, Col: c2}
}

// carvePartition runs the delegate on a shadow grid of the
// partition's size and replays the shadow's passages onto the real
// grid, offset into place.
func carvePartition(g *maze.Grid, rng *rand.Rand, cfg DivisionConfig, s divShape) error {
	delegate := cfg.Delegate
	if len(cfg.Delegates) > 0 {
		delegate = pick(rng, cfg.Delegates)
	}
	if delegate == nil {
		delegate = func(sg *maze.Grid, r *rand.Rand) error {
			return Sidewinder(sg, r, SidewinderConfig{})
		}
	}

	shadow, err := maze.NewRectangular(s.r1-s.r0+1, s.c1-s.c0+1)
	if err != nil {
		return err
	}
	if err := delegate(shadow, rng); err != nil {
		return err
	}
	for _, e := range shadow.Links() {
		a, b := e[0].Index(), e[1].Index()
		if err := g.Link(g.At(a.Row+s.r0, a.Col+s.c0), g.At(b.Row+s.r0, b.Col+s.c0)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "recursive-division",
		Aliases: []string{"rd", "division"},
		Summary: "repeated cuts with one doorway each, long straight walls",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return RecursiveDivision(g, rng, DivisionConfig{})
		},
	})
}
