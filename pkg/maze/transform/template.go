package transform

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// ExitPolicy locates the doorway left in a hard wall built by
// [Template.Rooms].
type ExitPolicy byte

const (
	// ExitRandom places the doorway at a random offset.
	ExitRandom ExitPolicy = 'R'
	// ExitHigh places the doorway at the highest offset.
	ExitHigh ExitPolicy = 'H'
	// ExitMedian places the doorway at the middle offset, truncated.
	ExitMedian ExitPolicy = 'M'
	// ExitLow places the doorway at the lowest offset.
	ExitLow ExitPolicy = 'L'
	// ExitNone seals the wall; the rooms stay disconnected.
	ExitNone ExitPolicy = 'N'
)

// templateOp is one reversible surgery step.
type templateOp struct {
	cell *maze.Cell
	dir  maze.Direction
	nbr  *maze.Cell
	back maze.Direction // empty for one-way removals
}

// Template performs structural surgery on a grid before generation:
// it removes potential edges (building hard walls no algorithm can
// carve through), partitions the grid into rooms, and lays out
// square spirals. Removals are logged so [Template.Reinstate] can put
// the grid back the way it was. Surgery happens on the adjacency,
// not on passages, so it composes with any carver run afterwards.
type Template struct {
	g   *maze.Grid
	log []templateOp
	// removed cells are logged separately; reinstating returns them
	// isolated, without their former grid edges.
	cells []*maze.Cell
}

// NewTemplate wraps a grid for templated surgery.
func NewTemplate(g *maze.Grid) *Template {
	return &Template{g: g}
}

// RemoveArc removes the one-way potential edge from cell in the
// given direction. Linked pairs are left alone.
func (t *Template) RemoveArc(cell *maze.Cell, d maze.Direction) bool {
	nbr, ok := t.g.RemoveArc(cell, d)
	if !ok {
		return false
	}
	t.log = append(t.log, templateOp{cell: cell, dir: d, nbr: nbr})
	return true
}

// RemoveEdge removes the potential edge between cell and its
// neighbor in the given direction, both ways.
func (t *Template) RemoveEdge(cell *maze.Cell, d maze.Direction) bool {
	nbr := cell.Neighbor(d)
	if nbr == nil {
		return false
	}
	back := nbr.DirectionTo(cell)
	if _, ok := t.g.RemoveEdge(cell, d); !ok {
		return false
	}
	t.log = append(t.log, templateOp{cell: cell, dir: d, nbr: nbr, back: back})
	return true
}

// RemoveCell detaches an unlinked cell from the grid. Cells carrying
// passages are refused.
func (t *Template) RemoveCell(cell *maze.Cell) bool {
	if cell.Degree() > 0 {
		return false
	}
	t.g.RemoveCell(cell)
	t.cells = append(t.cells, cell)
	return true
}

// Reinstate undoes the logged surgery in reverse order. Removed
// edges come back; removed cells return isolated, their former
// edges gone, matching what survives of them in the log.
func (t *Template) Reinstate() {
	for i := len(t.log) - 1; i >= 0; i-- {
		op := t.log[i]
		t.g.RestoreArc(op.cell, op.dir, op.nbr)
		if op.back != "" {
			t.g.RestoreArc(op.nbr, op.back, op.cell)
		}
	}
	t.log = nil
	for _, c := range t.cells {
		// error only on double reinstating, which the nil-out below
		// prevents
		_ = t.g.ReinstateCell(c)
	}
	t.cells = nil
}

// VerticalWall builds a hard wall along the east side of column j,
// rows r0 through r1 inclusive. The sink cell, if any, keeps its
// east edge as the doorway.
func (t *Template) VerticalWall(r0, r1, j int, sink *maze.Cell) {
	for i := r0; i <= r1; i++ {
		cell := t.g.At(i, j)
		if cell != nil && cell != sink {
			t.RemoveEdge(cell, maze.East)
		}
	}
}

// HorizontalWall builds a hard wall along the north side of row i,
// columns c0 through c1 inclusive. The sink cell, if any, keeps its
// north edge as the doorway.
func (t *Template) HorizontalWall(i, c0, c1 int, sink *maze.Cell) {
	for j := c0; j <= c1; j++ {
		cell := t.g.At(i, j)
		if cell != nil && cell != sink {
			t.RemoveEdge(cell, maze.North)
		}
	}
}

// OrientedWall builds a wall of the given length from start in the
// given compass direction and returns the far endpoint's row and
// column. North and south walls are vertical; east and west walls
// horizontal.
func (t *Template) OrientedWall(row, col int, d maze.Direction, length int, sink *maze.Cell) (int, int) {
	switch d {
	case maze.South:
		r1 := row - length + 1
		t.VerticalWall(r1, row, col, sink)
		return r1, col
	case maze.North:
		r1 := row + length - 1
		t.VerticalWall(row, r1, col, sink)
		return r1, col
	case maze.East:
		c1 := col + length - 1
		t.HorizontalWall(row, col, c1, sink)
		return row, c1
	default: // West
		c1 := col - length + 1
		t.HorizontalWall(row, c1, col, sink)
		return row, c1
	}
}

// RoomsConfig parameterizes [Template.Rooms].
type RoomsConfig struct {
	// MinRows and MinCols bound the smallest room; values below 3
	// are raised to 3.
	MinRows, MinCols int
	// ExitVertical locates doorways in horizontal walls (doors you
	// pass through moving north-south); ExitHorizontal locates
	// doorways in vertical walls. Zero values mean [ExitRandom].
	ExitVertical, ExitHorizontal ExitPolicy
}

func (c RoomsConfig) normalized() RoomsConfig {
	if c.MinRows < 3 {
		c.MinRows = 3
	}
	if c.MinCols < 3 {
		c.MinCols = 3
	}
	if c.ExitVertical == 0 {
		c.ExitVertical = ExitRandom
	}
	if c.ExitHorizontal == 0 {
		c.ExitHorizontal = ExitRandom
	}
	return c
}

// Rooms partitions the grid into rooms with hard walls, leaving one
// doorway per wall as dictated by the exit policies. This is
// recursive division operating on the adjacency instead of the
// passages: run a carver afterwards and each room gets its own maze,
// reachable only through the doorways.
func (t *Template) Rooms(rng *rand.Rand, cfg RoomsConfig) error {
	switch t.g.Topology() {
	case maze.TopologyRectangular, maze.TopologyMasked, maze.TopologyWeave, maze.TopologyPreweave:
	default:
		return errors.New(errors.ErrCodeUnsupportedTopology,
			"room partitioning needs axis-parallel walls, not a %s grid", t.g.Topology())
	}
	cfg = cfg.normalized()
	t.splitVertically(rng, cfg, 0, 0, t.g.Rows()-1, t.g.Cols()-1)
	return nil
}

// exitAt resolves an exit policy to an offset within [lo, hi].
func exitAt(rng *rand.Rand, p ExitPolicy, lo, hi int) (int, bool) {
	switch p {
	case ExitNone:
		return 0, false
	case ExitHigh:
		return hi, true
	case ExitMedian:
		return (lo + hi) / 2, true
	case ExitLow:
		return lo, true
	default:
		return lo + rng.Intn(hi-lo+1), true
	}
}

// splitVertically cuts the region with a horizontal wall and
// recurses; splitHorizontally is its mirror. The explicit pair keeps
// the cut orientation alternating the way the room texture expects.
func (t *Template) splitVertically(rng *rand.Rand, cfg RoomsConfig, r0, c0, r1, c1 int) {
	if r1-r0+1 < cfg.MinRows {
		return
	}
	split := r0 + rng.Intn(r1-r0)
	var sink *maze.Cell
	if col, ok := exitAt(rng, cfg.ExitVertical, c0, c1); ok {
		sink = t.g.At(split, col)
	}
	t.HorizontalWall(split, c0, c1, sink)
	t.splitHorizontally(rng, cfg, r0, c0, split, c1)
	t.splitHorizontally(rng, cfg, split+1, c0, r1, c1)
}

func (t *Template) splitHorizontally(rng *rand.Rand, cfg RoomsConfig, r0, c0, r1, c1 int) {
	if c1-c0+1 < cfg.MinCols {
		return
	}
	split := c0 + rng.Intn(c1-c0)
	var sink *maze.Cell
	if row, ok := exitAt(rng, cfg.ExitHorizontal, r0, r1); ok {
		sink = t.g.At(row, split)
	}
	t.VerticalWall(r0, r1, split, sink)
	t.splitVertically(rng, cfg, r0, c0, r1, split)
	t.splitVertically(rng, cfg, r0, split+1, r1, c1)
}

// Spiral builds a square spiral of hard walls around the center
// cell. Radius counts cells from the center to the spiral's edge;
// the spiral must fit inside the grid. Orientation is
// counterclockwise unless clockwise is set.
func (t *Template) Spiral(row, col, radius int, clockwise bool) error {
	m, n := t.g.Rows()-1, t.g.Cols()-1
	if row < radius || m-row < radius || col < radius || n-col < radius {
		return errors.New(errors.ErrCodeInvalidInput,
			"spiral of radius %d at (%d,%d) does not fit a %dx%d grid",
			radius, row, col, t.g.Rows(), t.g.Cols())
	}

	type arm struct {
		next     maze.Direction
		adjust   [2]int
		startRow int
		startCol int
	}
	var arms map[maze.Direction]arm
	if clockwise {
		arms = map[maze.Direction]arm{
			maze.North: {maze.East, [2]int{0, 1}, row + 1, col - 1},
			maze.West:  {maze.North, [2]int{1, -1}, row - 1, col - 1},
			maze.South: {maze.West, [2]int{-1, 0}, row, col},
			maze.East:  {maze.South, [2]int{0, 0}, row, col + 1},
		}
	} else {
		arms = map[maze.Direction]arm{
			maze.South: {maze.East, [2]int{-1, 1}, row, col - 1},
			maze.East:  {maze.North, [2]int{1, 0}, row - 1, col + 1},
			maze.North: {maze.West, [2]int{0, 0}, row + 1, col},
			maze.West:  {maze.South, [2]int{0, -1}, row, col - 1},
		}
	}

	for _, d := range [...]maze.Direction{maze.South, maze.East, maze.North, maze.West} {
		dir := d
		r, c := arms[dir].startRow, arms[dir].startCol
		if dir == maze.South {
			r--
		}
		for length := 1; length < 2*radius-1; length += 2 {
			r, c = t.OrientedWall(r, c, dir, length, nil)
			adj := arms[dir].adjust
			r, c = r+adj[0], c+adj[1]
			dir = arms[dir].next
		}
	}
	return nil
}
