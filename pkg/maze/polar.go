package maze

import (
	"math"

	"github.com/mazekit/mazekit/pkg/errors"
)

// PolarConfig controls polar (theta) grid construction.
type PolarConfig struct {
	// PoleCells is the number of wedge cells sharing a vertex at the
	// pole. Values below 2 produce a single cell centered on the pole
	// whose only walls face outward.
	PoleCells int

	// SplitAt is the arc length above which a cell fans out to more
	// than one outward neighbor. Smaller values give more, narrower
	// cells per latitude. Values below 0.5 are rejected: the outward
	// counts explode and the innermost rings degenerate.
	SplitAt float64
}

// NewPolar builds a polar grid of the given number of latitudes.
// Latitude 0 is the pole cell (or pole wedges); each latitude i has a
// uniform outward fan-out chosen so the arc length of a cell's outer
// wall stays below the configured split threshold. Neighbor slots are
// clockwise, counterclockwise, inward, and one numbered outward slot
// per outward neighbor. Iteration is latitude-major; there is no
// consistent column-major order on a polar grid.
func NewPolar(latitudes int, cfg PolarConfig) (*Grid, error) {
	if latitudes < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "latitudes must be positive, got %d", latitudes)
	}
	if cfg.SplitAt == 0 {
		cfg.SplitAt = 1
	}
	if cfg.SplitAt < 0.5 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "splitAt must be at least 0.5, got %g", cfg.SplitAt)
	}
	if cfg.PoleCells < 2 {
		cfg.PoleCells = 1
	}

	g := newGrid(TopologyPolar, latitudes, 0, 0)

	// Latitude 0. A lone pole cell fans straight out; pole wedges
	// also carry cw/ccw walls between each other.
	poleFan := polarFan(2*math.Pi, cfg.PoleCells, cfg.SplitAt, latitudes == 1)
	n := cfg.PoleCells
	g.rings = []int{n}
	fans := []int{poleFan}
	for j := 0; j < n; j++ {
		g.addCell(Index{Row: 0, Col: j}, KindCell)
	}

	// Outer latitudes. The cell count per latitude is the previous
	// count times the previous fan-out.
	count := n * poleFan
	for i := 1; i < latitudes; i++ {
		fan := polarFan(float64(i+2)*2*math.Pi, count, cfg.SplitAt, i+1 == latitudes)
		g.rings = append(g.rings, count)
		fans = append(fans, fan)
		for j := 0; j < count; j++ {
			g.addCell(Index{Row: i, Col: j}, KindCell)
		}
		count *= fan
	}

	// Wire the slots: cw/ccw around each latitude, inward/outward
	// between latitudes.
	for i := 0; i < latitudes; i++ {
		cols := g.rings[i]
		for j := 0; j < cols; j++ {
			c := g.byIndex[Index{Row: i, Col: j}]
			if cols > 1 {
				c.setNeighbor(CounterClockwise, g.byIndex[Index{Row: i, Col: mod(j+1, cols)}])
				c.setNeighbor(Clockwise, g.byIndex[Index{Row: i, Col: mod(j-1, cols)}])
			}
			if i+1 < latitudes {
				for k := 0; k < fans[i]; k++ {
					nbr := g.byIndex[Index{Row: i + 1, Col: j*fans[i] + k}]
					c.setNeighbor(Outward(k), nbr)
					nbr.setNeighbor(Inward, c)
				}
			}
		}
	}
	return g, nil
}

// polarFan computes a latitude's outward fan-out: the number of
// next-latitude cells each cell feeds, chosen so outer arc lengths
// stay below the split threshold. The outermost latitude fans to
// nothing.
func polarFan(outerCircumference float64, cells int, splitAt float64, outermost bool) int {
	if outermost {
		return 0
	}
	fan := int(outerCircumference / splitAt / float64(cells))
	if fan < 1 {
		fan = 1
	}
	return fan
}
