package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// KruskalState holds the component coloring and unvisited edge list
// for Kruskal's algorithm. Constructing the state separately lets a
// caller preintegrate features that must be decided before the edge
// lottery runs: weave crossings, long tunnels, and forced
// connections all claim their cells here, purge the edges they
// invalidate, and pre-merge the components they connect, so the main
// loop cannot carve anything that would conflict with them.
type KruskalState struct {
	g     *maze.Grid
	ds    *maze.DisjointSet
	edges [][2]*maze.Cell
}

// NewKruskalState colors every cell uniquely and lists every grid
// edge as unvisited.
func NewKruskalState(g *maze.Grid) *KruskalState {
	return &KruskalState{
		g:     g,
		ds:    maze.NewDisjointSet(g),
		edges: g.Edges(),
	}
}

// CanMerge reports whether carving the edge would join two different
// components, i.e. not close a circuit.
func (s *KruskalState) CanMerge(a, b *maze.Cell) bool {
	return !s.ds.Same(a, b)
}

// purge drops every unvisited edge for which drop returns true.
func (s *KruskalState) purge(drop func(a, b *maze.Cell) bool) {
	kept := s.edges[:0]
	for _, e := range s.edges {
		if !drop(e[0], e[1]) {
			kept = append(kept, e)
		}
	}
	s.edges = kept
}

// merge carves the edge and joins the two components.
func (s *KruskalState) merge(a, b *maze.Cell) error {
	if err := s.g.Link(a, b); err != nil {
		return err
	}
	s.ds.Union(a, b)
	return nil
}

// CanAddCrossing reports whether a weave crossing centered on cell is
// admissible: the cell must be unvisited with all four cardinal
// neighbors present, and neither the north-south nor the east-west
// pair may already share a component.
func (s *KruskalState) CanAddCrossing(cell *maze.Cell) bool {
	if !s.g.Tunnels() || cell.Degree() > 0 {
		return false
	}
	n, so := cell.Neighbor(maze.North), cell.Neighbor(maze.South)
	e, w := cell.Neighbor(maze.East), cell.Neighbor(maze.West)
	if n == nil || so == nil || e == nil || w == nil {
		return false
	}
	return s.CanMerge(n, so) && s.CanMerge(e, w)
}

// AddCrossing claims cell as a weave crossing: a straight passage
// through the cell on one axis with a tunnel underneath on the
// other, the axis chosen by coin flip. All of the cell's grid edges
// are marked visited so the main loop leaves the crossing alone.
// Returns false without modifying anything if the crossing is not
// admissible.
func (s *KruskalState) AddCrossing(rng *rand.Rand, cell *maze.Cell) (bool, error) {
	if !s.CanAddCrossing(cell) {
		return false, nil
	}
	s.purge(func(a, b *maze.Cell) bool { return a == cell || b == cell })

	over := [2]maze.Direction{maze.East, maze.West}
	under := [2]maze.Direction{maze.North, maze.South}
	if rng.Float64() < 0.5 {
		over, under = under, over
	}
	if err := s.merge(cell, cell.Neighbor(over[0])); err != nil {
		return false, err
	}
	if err := s.merge(cell, cell.Neighbor(over[1])); err != nil {
		return false, err
	}

	a, b := cell.Neighbor(under[0]), cell.Neighbor(under[1])
	u, err := s.g.TunnelUnder(cell)
	if err != nil {
		return false, err
	}
	// TunnelUnder already carved a—u—b; fold the undercell into the
	// merged component.
	s.ds.Add(u)
	s.ds.Union(u, a)
	s.ds.Union(u, b)
	return true, nil
}

// AddRandomCrossings attempts n crossings at random interior cells
// and returns how many were actually added. n below one means one
// attempt per grid cell.
func (s *KruskalState) AddRandomCrossings(rng *rand.Rand, n int) (int, error) {
	if n < 1 {
		n = s.g.Size()
	}
	rows, cols := s.g.Rows(), s.g.Cols()
	if rows < 3 || cols < 3 {
		return 0, nil
	}
	added := 0
	for i := 0; i < n; i++ {
		cell := s.g.At(1+rng.Intn(rows-2), 1+rng.Intn(cols-2))
		if cell == nil {
			continue
		}
		ok, err := s.AddCrossing(rng, cell)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// AddLongTunnel digs a straight tunnel of the given length from
// start, pre-merging its two mouths and retiring every edge interior
// to the run. If the mouths already shared a component the tunnel
// still stands and the maze keeps the resulting circuit.
func (s *KruskalState) AddLongTunnel(start *maze.Cell, d maze.Direction, length int) error {
	undercells, last, err := s.g.AddLongTunnel(start, d, length)
	if err != nil {
		return err
	}
	inRun := map[*maze.Cell]bool{start: true, last: true}
	for _, u := range undercells {
		ix := u.Index()
		inRun[s.g.CellAt(maze.Index{Row: ix.Row, Col: ix.Col})] = true
	}
	s.purge(func(a, b *maze.Cell) bool { return inRun[a] && inRun[b] })

	s.ds.Union(start, last)
	for _, u := range undercells {
		s.ds.Add(u)
		s.ds.Union(u, start)
	}
	return nil
}

// ForceConnection carves the passage from cell in the given
// direction unconditionally and retires its edge.
func (s *KruskalState) ForceConnection(cell *maze.Cell, d maze.Direction) error {
	nbr := cell.Neighbor(d)
	if nbr == nil {
		return errors.New(errors.ErrCodeInvalidLink,
			"cell %s has no %s neighbor to force", cell.Name(), d)
	}
	if err := s.merge(cell, nbr); err != nil {
		return err
	}
	s.purge(func(a, b *maze.Cell) bool {
		return (a == cell && b == nbr) || (a == nbr && b == cell)
	})
	return nil
}

// Kruskal carves a spanning tree by drawing grid edges in a random
// order and accepting each one that joins two components, using st
// for any preintegrated state; pass nil for a plain run. Shuffling
// stands in for unique random edge weights. On a disconnected grid
// the result is a spanning forest.
func Kruskal(g *maze.Grid, rng *rand.Rand, st *KruskalState) error {
	if st == nil {
		st = NewKruskalState(g)
	}
	shuffleEdges(rng, st.edges)
	for len(st.edges) > 0 {
		e := st.edges[len(st.edges)-1]
		st.edges = st.edges[:len(st.edges)-1]
		if st.CanMerge(e[0], e[1]) {
			if err := st.merge(e[0], e[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "kruskal",
		Aliases: []string{"k", "kruskals"},
		Summary: "random edge lottery joining components, weave-friendly",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return Kruskal(g, rng, nil)
		},
	})
	Register(Algorithm{
		Name:    "kruskal-weave",
		Aliases: []string{"kw"},
		Summary: "kruskal preloaded with as many weave crossings as fit",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			st := NewKruskalState(g)
			if _, err := st.AddRandomCrossings(rng, 0); err != nil {
				return err
			}
			return Kruskal(g, rng, st)
		},
	})
}
