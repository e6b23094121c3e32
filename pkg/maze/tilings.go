package maze

import "github.com/mazekit/mazekit/pkg/errors"

// NewDelta builds a triangular tiling: each of the rows×cols unit
// squares holds two right triangles, a southeast triangle and a
// northwest triangle, joined along the diagonal. The SE triangle of a
// unit sits at column 2j and faces south and east; the NW triangle
// sits at column 2j+1 and faces north and west.
func NewDelta(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	g := newGrid(TopologyDelta, rows, cols, 0)
	se := func(i, j int) *Cell { return g.byIndex[Index{Row: i, Col: 2 * j}] }
	nw := func(i, j int) *Cell { return g.byIndex[Index{Row: i, Col: 2*j + 1}] }

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.addCell(Index{Row: i, Col: 2 * j}, KindCell)
			g.addCell(Index{Row: i, Col: 2*j + 1}, KindCell)
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			cSE, cNW := se(i, j), nw(i, j)
			connect(cSE, NorthWest, cNW) // shared diagonal
			if n := se(i+1, j); i+1 < rows && n != nil {
				connect(cNW, North, n)
			}
			if e := nw(i, j+1); j+1 < cols && e != nil {
				connect(cSE, East, e)
			}
		}
	}
	return g, nil
}

// NewSigma builds a hexagonal tiling in doubled-row coordinates: rows
// counts half-rows, and a hexagon's forward/backward neighbors sit two
// half-rows away in the same column. The four diagonal slots shift
// column by half-row parity.
func NewSigma(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	g := newGrid(TopologySigma, rows, cols, 0)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.addCell(Index{Row: i, Col: j}, KindCell)
		}
	}
	at := func(i, j int) *Cell {
		if i < 0 || i >= rows || j < 0 || j >= cols {
			return nil
		}
		return g.byIndex[Index{Row: i, Col: j}]
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := at(i, j)
			set := func(d Direction, n *Cell) {
				if n != nil {
					c.setNeighbor(d, n)
				}
			}
			set(Forward, at(i+2, j))
			set(Backward, at(i-2, j))
			if i%2 == 0 {
				set(ForwardRight, at(i+1, j))
				set(ForwardLeft, at(i+1, j-1))
				set(BackLeft, at(i-1, j-1))
				set(BackRight, at(i-1, j))
			} else {
				set(ForwardRight, at(i+1, j+1))
				set(ForwardLeft, at(i+1, j))
				set(BackLeft, at(i-1, j))
				set(BackRight, at(i-1, j+1))
			}
		}
	}
	return g, nil
}

// NewUpsilon builds an octagon-and-square tiling: cells where row+col
// is even are octagons with all eight compass slots; the rest are
// squares with the four cardinal slots only.
func NewUpsilon(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	g := newGrid(TopologyUpsilon, rows, cols, 0)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.addCell(Index{Row: i, Col: j}, KindCell)
		}
	}
	at := func(i, j int) *Cell {
		if i < 0 || i >= rows || j < 0 || j >= cols {
			return nil
		}
		return g.byIndex[Index{Row: i, Col: j}]
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := at(i, j)
			set := func(d Direction, n *Cell) {
				if n != nil {
					c.setNeighbor(d, n)
				}
			}
			set(East, at(i, j+1))
			set(North, at(i+1, j))
			set(West, at(i, j-1))
			set(South, at(i-1, j))
			if (i+j)%2 == 0 { // octagon
				set(NorthEast, at(i+1, j+1))
				set(NorthWest, at(i+1, j-1))
				set(SouthWest, at(i-1, j-1))
				set(SouthEast, at(i-1, j+1))
			}
		}
	}
	return g, nil
}
