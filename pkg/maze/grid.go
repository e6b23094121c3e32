package maze

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
)

// Topology names for the built-in grid builders.
const (
	TopologyRectangular = "rectangular"
	TopologyCylinder    = "cylinder"
	TopologyMoebius     = "moebius"
	TopologyPolar       = "polar"
	TopologyDelta       = "delta"
	TopologySigma       = "sigma"
	TopologyUpsilon     = "upsilon"
	TopologyOblong      = "oblong" // 3-D rectangular
	TopologyMultilevel  = "multilevel"
	TopologyMasked      = "masked"
	TopologyWeave       = "weave"
	TopologyPreweave    = "preweave"
)

// Grid is an ordered collection of cells plus the adjacency wired
// between them by a topology builder. A maze is not a separate type:
// it is the grid's link state once a generation algorithm has run.
//
// Cell iteration order is creation order, which the deterministic
// algorithms (binary tree, sidewinder, Eller's) rely on. All
// randomness is drawn from rand.Rand instances passed in by callers,
// never from package-level state.
type Grid struct {
	topology string
	rows     int
	cols     int
	levels   int
	rings    []int // cells per latitude, polar grids only

	cells   []*Cell
	byIndex map[Index]*Cell

	linkCount int

	// weave capabilities
	weave    bool // tunnel candidates appear in Neighbors
	tunnels  bool // TunnelUnder permitted (weave and preweave)
	oriented bool // Möbius seam handling for renderers

	// component census, rebuilt lazily and dropped on every
	// link/unlink
	comp  map[*Cell]int
	ncomp int
}

func newGrid(topology string, rows, cols, levels int) *Grid {
	return &Grid{
		topology: topology,
		rows:     rows,
		cols:     cols,
		levels:   levels,
		byIndex:  make(map[Index]*Cell),
	}
}

// Topology returns the name of the topology that built this grid.
func (g *Grid) Topology() string { return g.topology }

// Rows returns the number of rows (latitudes for polar grids).
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns. Polar grids have a variable
// number of cells per latitude; use [Grid.RingSize] instead.
func (g *Grid) Cols() int { return g.cols }

// Levels returns the number of levels for 3-D and multilevel grids,
// and zero for flat grids.
func (g *Grid) Levels() int { return g.levels }

// RingSize returns the number of cells at the given polar latitude,
// or zero for non-polar grids.
func (g *Grid) RingSize(i int) int {
	if i < 0 || i >= len(g.rings) {
		return 0
	}
	return g.rings[i]
}

// Size returns the number of cells (the v in v − e − k = 0).
func (g *Grid) Size() int { return len(g.cells) }

// LinkCount returns the number of passages (the e in v − e − k = 0).
func (g *Grid) LinkCount() int { return g.linkCount }

// Cells returns every cell in iteration order. The slice is a copy;
// the cells are live.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// CellAt returns the cell at the given index, or nil.
func (g *Grid) CellAt(ix Index) *Cell { return g.byIndex[ix] }

// At returns the level-0 cell at (row, col), or nil. Out-of-range
// coordinates are normalized by the topology where the topology wraps
// (cylinder, Möbius); elsewhere they fall outside the grid.
func (g *Grid) At(row, col int) *Cell {
	return g.byIndex[g.normalize(Index{Row: row, Col: col})]
}

// normalize applies the topology's coordinate identification rules:
// cylinders glue the east and west edges, and Möbius strips glue them
// with a half twist that flips the row.
func (g *Grid) normalize(ix Index) Index {
	switch g.topology {
	case TopologyCylinder:
		ix.Col = mod(ix.Col, g.cols)
	case TopologyMoebius:
		ix.Col = mod(ix.Col, 2*g.cols)
		if ix.Col >= g.cols {
			ix.Row = g.rows - 1 - ix.Row
			ix.Col -= g.cols
		}
	case TopologyPolar:
		if ix.Row >= 0 && ix.Row < len(g.rings) {
			ix.Col = mod(ix.Col, g.rings[ix.Row])
		}
	}
	return ix
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// addCell creates a cell, registers it and returns it. Builders call
// this in traversal order.
func (g *Grid) addCell(ix Index, kind CellKind) *Cell {
	c := newCell(ix, kind)
	c.ord = len(g.cells)
	g.cells = append(g.cells, c)
	g.byIndex[ix] = c
	return c
}

// connect wires a bidirectional pair of neighbor slots. The reverse
// slot is d.Opposite() unless an explicit reverse is given (polar
// outward slots reverse to Inward).
func connect(a *Cell, d Direction, b *Cell, reverse ...Direction) {
	a.setNeighbor(d, b)
	r := d.Opposite()
	if len(reverse) > 0 {
		r = reverse[0]
	}
	if r != "" {
		b.setNeighbor(r, a)
	}
}

// Neighbors returns the cells reachable from c by a single potential
// passage. For weave grids this includes tunnel candidates: cells two
// steps away whose intervening cell carries a perpendicular
// straight-through passage.
func (g *Grid) Neighbors(c *Cell) []*Cell {
	out := c.Neighbors()
	if g.weave {
		out = append(out, g.tunnelCandidates(c)...)
	}
	return out
}

// Neighbor returns the cell in the given direction from c, or nil.
// This is the narrow query renderers use.
func (g *Grid) Neighbor(c *Cell, d Direction) *Cell { return c.Neighbor(d) }

// Linked reports whether a and b are joined by a passage.
func (g *Grid) Linked(a, b *Cell) bool { return a.Linked(b) }

// Link carves a passage between a and b. It fails with an
// INVALID_LINK error when the two cells are not potential neighbors
// under the topology. On weave grids, linking a cell to a tunnel
// candidate creates an undercell beneath the intervening platform and
// routes the passage through it.
func (g *Grid) Link(a, b *Cell) error {
	if a == nil || b == nil || a == b {
		return errors.New(errors.ErrCodeInvalidLink, "link requires two distinct cells")
	}
	if a.DirectionTo(b) != "" {
		g.rawLink(a, b)
		return nil
	}
	if g.weave {
		if platform := g.platformBetween(a, b); platform != nil {
			_, err := g.TunnelUnder(platform)
			return err
		}
	}
	return errors.New(errors.ErrCodeInvalidLink, "cells %s and %s are not neighbors", a.Index(), b.Index())
}

// rawLink records a passage without topology checks. Weave tunnel
// construction uses it to join undercells to cells whose directional
// slots were just re-pointed.
func (g *Grid) rawLink(a, b *Cell) {
	if a.Linked(b) {
		return
	}
	a.addLink(b)
	b.addLink(a)
	g.linkCount++
	g.comp = nil
}

// LinkOneWay carves a directed passage from a to b without the
// return passage, for adjacencies that only exist in one direction.
// One-way arcs do not count toward [Grid.LinkCount]; EulerCounts
// reports them in the directed totals.
func (g *Grid) LinkOneWay(a, b *Cell) error {
	if a == nil || b == nil || a == b {
		return errors.New(errors.ErrCodeInvalidLink, "link requires two distinct cells")
	}
	if a.DirectionTo(b) == "" {
		return errors.New(errors.ErrCodeInvalidLink, "cells %s and %s are not neighbors", a.Index(), b.Index())
	}
	if a.Linked(b) {
		return nil
	}
	a.addLink(b)
	g.comp = nil
	return nil
}

// Unlink removes the passage between a and b. It is a no-op when the
// cells are not linked.
func (g *Grid) Unlink(a, b *Cell) {
	if a == nil || b == nil || !a.Linked(b) {
		return
	}
	a.removeLink(b)
	b.removeLink(a)
	g.linkCount--
	g.comp = nil
}

// RandomCell returns a cell chosen uniformly from the grid.
func (g *Grid) RandomCell(rng *rand.Rand) *Cell {
	return g.cells[rng.Intn(len(g.cells))]
}

// DeadEnds returns the cells with exactly one passage. The result is
// computed fresh from live link state on every call.
func (g *Grid) DeadEnds() []*Cell {
	var out []*Cell
	for _, c := range g.cells {
		if c.Degree() == 1 {
			out = append(out, c)
		}
	}
	return out
}

// Links enumerates every passage once as an unordered cell pair.
func (g *Grid) Links() [][2]*Cell {
	out := make([][2]*Cell, 0, g.linkCount)
	for _, c := range g.cells {
		for _, l := range c.links {
			if c.ord < l.ord {
				out = append(out, [2]*Cell{c, l})
			}
		}
	}
	return out
}

// Edges enumerates every potential passage once as an unordered cell
// pair, in iteration order. Weight-based algorithms consume this.
func (g *Grid) Edges() [][2]*Cell {
	var out [][2]*Cell
	for _, c := range g.cells {
		for _, n := range g.Neighbors(c) {
			if c.ord < n.ord {
				out = append(out, [2]*Cell{c, n})
			}
		}
	}
	return out
}

// Components returns the number of connected components under the
// current link state (the k in v − e − k = 0). The census is cached
// until the next link or unlink.
func (g *Grid) Components() int {
	g.census()
	return g.ncomp
}

// SameComponent reports whether a path of passages joins a and b.
func (g *Grid) SameComponent(a, b *Cell) bool {
	g.census()
	return g.comp[a] == g.comp[b]
}

// Connected reports whether the potential adjacency graph (ignoring
// link state) is a single component. Algorithms that require global
// connectivity check this before generation begins.
func (g *Grid) Connected() bool {
	if len(g.cells) == 0 {
		return true
	}
	seen := map[*Cell]bool{g.cells[0]: true}
	stack := []*Cell{g.cells[0]}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range g.Neighbors(c) {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(seen) == len(g.cells)
}

func (g *Grid) census() {
	if g.comp != nil {
		return
	}
	g.comp = make(map[*Cell]int, len(g.cells))
	g.ncomp = 0
	for _, c := range g.cells {
		if _, ok := g.comp[c]; ok {
			continue
		}
		g.ncomp++
		g.comp[c] = g.ncomp
		stack := []*Cell{c}
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, l := range u.links {
				if _, ok := g.comp[l]; !ok {
					g.comp[l] = g.ncomp
					stack = append(stack, l)
				}
			}
		}
	}
}

// RemoveCell detaches a cell from the grid entirely: every passage is
// removed, every neighbor slot pointing at it is cleared, and the cell
// disappears from enumeration. The sparsify braiding style uses this
// to clip dead ends.
func (g *Grid) RemoveCell(c *Cell) {
	for _, l := range c.Links() {
		g.Unlink(c, l)
	}
	for _, d := range c.Directions() {
		nbr := c.Neighbor(d)
		if nbr == nil {
			continue
		}
		if back := nbr.DirectionTo(c); back != "" {
			nbr.clearNeighbor(back)
		}
	}
	c.dirs = nil
	c.nbrs = map[Direction]*Cell{}
	delete(g.byIndex, c.index)
	for i, cc := range g.cells {
		if cc == c {
			g.cells = append(g.cells[:i], g.cells[i+1:]...)
			break
		}
	}
	for i, cc := range g.cells {
		cc.ord = i
	}
	g.comp = nil
}

// RemoveArc clears the one-way neighbor slot from c in direction d,
// so the cells stop being potential neighbors in that direction. It
// refuses when the slot is empty or the two cells are already
// linked, and returns the neighbor that was detached.
func (g *Grid) RemoveArc(c *Cell, d Direction) (*Cell, bool) {
	nbr := c.Neighbor(d)
	if nbr == nil || c.Linked(nbr) {
		return nil, false
	}
	c.clearNeighbor(d)
	return nbr, true
}

// RemoveEdge clears the neighbor slots in both directions between c
// and its neighbor in direction d. Like [Grid.RemoveArc] it refuses
// when the cells are already linked.
func (g *Grid) RemoveEdge(c *Cell, d Direction) (*Cell, bool) {
	nbr, ok := g.RemoveArc(c, d)
	if !ok {
		return nil, false
	}
	if back := nbr.DirectionTo(c); back != "" {
		nbr.clearNeighbor(back)
	}
	return nbr, true
}

// RestoreArc reinstates a previously removed one-way neighbor slot.
func (g *Grid) RestoreArc(c *Cell, d Direction, nbr *Cell) {
	c.setNeighbor(d, nbr)
}

// ReinstateCell returns a removed cell to the grid's enumeration. The
// cell comes back isolated; its former grid edges are not restored.
func (g *Grid) ReinstateCell(c *Cell) error {
	if g.byIndex[c.index] != nil {
		return errors.New(errors.ErrCodeInvalidInput, "cell %s is already present", c.index)
	}
	c.ord = len(g.cells)
	g.cells = append(g.cells, c)
	g.byIndex[c.index] = c
	g.comp = nil
	return nil
}

// EachRow returns the grid's cells row by row in traversal order
// (bottom row first; latitude-major for polar grids; level by level
// for 3-D grids). Topologies with no consistent row order return nil,
// which row-based algorithms surface as UNSUPPORTED_TOPOLOGY.
func (g *Grid) EachRow() [][]*Cell {
	switch g.topology {
	case TopologyMultilevel:
		return nil
	case TopologyPolar:
		rows := make([][]*Cell, len(g.rings))
		for i, n := range g.rings {
			row := make([]*Cell, 0, n)
			for j := 0; j < n; j++ {
				row = append(row, g.byIndex[Index{Row: i, Col: j}])
			}
			rows[i] = row
		}
		return rows
	case TopologyDelta:
		rows := make([][]*Cell, 0, g.rows)
		for i := 0; i < g.rows; i++ {
			row := make([]*Cell, 0, 2*g.cols)
			for j := 0; j < 2*g.cols; j++ {
				if c := g.byIndex[Index{Row: i, Col: j}]; c != nil {
					row = append(row, c)
				}
			}
			rows = append(rows, row)
		}
		return rows
	default:
		levels := g.levels
		if levels == 0 {
			levels = 1
		}
		rows := make([][]*Cell, 0, g.rows*levels)
		for l := 0; l < levels; l++ {
			for i := 0; i < g.rows; i++ {
				var row []*Cell
				for j := 0; j < g.cols; j++ {
					if c := g.byIndex[Index{Row: i, Col: j, Level: levelIndex(l, g.levels)}]; c != nil {
						row = append(row, c)
					}
				}
				if len(row) > 0 {
					rows = append(rows, row)
				}
			}
		}
		return rows
	}
}

func levelIndex(l, levels int) int {
	if levels == 0 {
		return 0
	}
	return l
}
