package maze

import "github.com/mazekit/mazekit/pkg/errors"

// NewMultilevel builds a stack of rectangular floors with no vertical
// adjacency. Floors are joined explicitly with [Grid.AddStairs], which
// inserts a stairwell cell between a cell and the cell directly above
// it. A multilevel grid with no stairs is intentionally disconnected;
// algorithms that require connectivity will refuse it until stairs
// are added.
func NewMultilevel(rows, cols, floors int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, floors); err != nil {
		return nil, err
	}
	if floors < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "floors must be positive, got %d", floors)
	}
	g := newGrid(TopologyMultilevel, rows, cols, floors)
	for l := 0; l < floors; l++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				g.addCell(Index{Row: i, Col: j, Level: l}, KindCell)
			}
		}
	}
	at := func(i, j, l int) *Cell { return g.byIndex[Index{Row: i, Col: j, Level: l}] }
	for l := 0; l < floors; l++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				c := at(i, j, l)
				set := func(d Direction, n *Cell) {
					if n != nil {
						c.setNeighbor(d, n)
					}
				}
				set(North, at(i+1, j, l))
				set(South, at(i-1, j, l))
				set(East, at(i, j+1, l))
				set(West, at(i, j-1, l))
			}
		}
	}
	return g, nil
}

// AddStairs inserts a stairwell cell joining (row, col) on the given
// floor to the same position one floor up. The stairwell's only slots
// are down to the lower cell and up to the upper one; the floor cells
// gain matching up/down slots pointing at the stairwell. When carve is
// true the staircase passages are linked immediately, which preweave-
// style generation over multilevel grids relies on.
func (g *Grid) AddStairs(floor, row, col int, carve bool) (*Cell, error) {
	if g.topology != TopologyMultilevel {
		return nil, errors.New(errors.ErrCodeUnsupportedTopology, "stairs require a multilevel grid, have %s", g.topology)
	}
	lower := g.byIndex[Index{Row: row, Col: col, Level: floor}]
	upper := g.byIndex[Index{Row: row, Col: col, Level: floor + 1}]
	if lower == nil || upper == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no floor pair at (%d,%d) above floor %d", row, col, floor)
	}
	if lower.Neighbor(Up) != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "stairwell already present at (%d,%d) floor %d", row, col, floor)
	}

	// Stairwells are indexed on the half level between the floors
	// they join.
	stair := g.addCell(Index{Row: row, Col: col, Level: floors(floor)}, KindStair)
	connect(stair, Down, lower)
	connect(stair, Up, upper)
	if carve {
		g.rawLink(stair, lower)
		g.rawLink(stair, upper)
	}
	return stair, nil
}

// floors maps a floor number to the stairwell level slot above it.
// Floor levels are 0..n-1; stairwells occupy negative levels so they
// can never collide with a floor index.
func floors(floor int) int { return -(floor + 1) }
