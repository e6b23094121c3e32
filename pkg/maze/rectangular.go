package maze

import "github.com/mazekit/mazekit/pkg/errors"

// NewRectangular builds a rows×cols rectangular grid. Row 0 is the
// bottom row; north is toward higher row numbers. Iteration order is
// row-major from the bottom-left corner.
func NewRectangular(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	g := newGrid(TopologyRectangular, rows, cols, 0)
	buildOrthogonal(g)
	return g, nil
}

// NewCylinder builds a rectangular grid whose east and west edges are
// glued: the east neighbor of the last column is the first column of
// the same row.
func NewCylinder(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	g := newGrid(TopologyCylinder, rows, cols, 0)
	buildOrthogonal(g)
	return g, nil
}

// NewMoebius builds a rectangular grid glued east to west with a half
// twist: a passage crossing the seam comes out on the opposite row,
// and the crossing cell's orientation flips, so clockwise becomes
// counterclockwise on the far side. Renderers that unroll the strip
// should query [Grid.Topology] and draw 2·cols logical columns.
func NewMoebius(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	g := newGrid(TopologyMoebius, rows, cols, 0)
	g.oriented = true
	buildOrthogonal(g)
	return g, nil
}

// buildOrthogonal creates the cells of a rectangular-family grid and
// wires the four compass slots, delegating seam identification to the
// grid's normalize rule. Cylinders glue columns; Möbius strips glue
// with a twist; the plain rectangle wraps nothing.
func buildOrthogonal(g *Grid) {
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			g.addCell(Index{Row: i, Col: j}, KindCell)
		}
	}
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			c := g.byIndex[Index{Row: i, Col: j}]
			if n := g.lookup(i+1, j); n != nil {
				c.setNeighbor(North, n)
			}
			if n := g.lookup(i-1, j); n != nil {
				c.setNeighbor(South, n)
			}
			if n := g.lookup(i, j+1); n != nil {
				c.setNeighbor(East, n)
			}
			if n := g.lookup(i, j-1); n != nil {
				c.setNeighbor(West, n)
			}
		}
	}
}

// lookup resolves a possibly out-of-range coordinate through the
// topology's identification rule.
func (g *Grid) lookup(row, col int) *Cell {
	return g.byIndex[g.normalize(Index{Row: row, Col: col})]
}
