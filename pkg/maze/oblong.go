package maze

import "github.com/mazekit/mazekit/pkg/errors"

// Neighborhood selects the planar adjacency of a 3-D oblong grid.
type Neighborhood int

const (
	// Neighborhood4 is the von Neumann neighborhood: the four
	// cardinal directions plus up and down.
	Neighborhood4 Neighborhood = 4

	// Neighborhood6 adds the northeast/southwest diagonal pair,
	// giving a rhombic packing.
	Neighborhood6 Neighborhood = 6

	// Neighborhood8 is the Moore neighborhood: all eight planar
	// directions plus up and down.
	Neighborhood8 Neighborhood = 8
)

// NewOblong builds a rows×cols×levels three-dimensional grid. Planar
// adjacency follows the chosen neighborhood; every cell additionally
// has up and down slots to the cells directly above and below.
// Iteration is level by level, each level row-major from the bottom.
func NewOblong(rows, cols, levels int, nb Neighborhood) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols, levels); err != nil {
		return nil, err
	}
	if levels < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "levels must be positive, got %d", levels)
	}
	switch nb {
	case Neighborhood4, Neighborhood6, Neighborhood8:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "neighborhood must be 4, 6 or 8, got %d", nb)
	}

	g := newGrid(TopologyOblong, rows, cols, levels)
	for l := 0; l < levels; l++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				g.addCell(Index{Row: i, Col: j, Level: l}, KindCell)
			}
		}
	}
	at := func(i, j, l int) *Cell { return g.byIndex[Index{Row: i, Col: j, Level: l}] }
	for l := 0; l < levels; l++ {
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
				if nb >= Neighborhood6 {
					set(NorthEast, at(i+1, j+1, l))
					set(SouthWest, at(i-1, j-1, l))
				}
				if nb == Neighborhood8 {
					set(NorthWest, at(i+1, j-1, l))
					set(SouthEast, at(i-1, j+1, l))
				}
				set(Up, at(i, j, l+1))
				set(Down, at(i, j, l-1))
			}
		}
	}
	return g, nil
}
