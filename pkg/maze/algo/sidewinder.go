package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// SidewinderConfig parameterizes the sidewinder family.
type SidewinderConfig struct {
	// Bias is the probability of extending the current run instead of
	// closing it out. Zero means use the default of 0.5.
	Bias float64
}

func (c SidewinderConfig) bias() float64 {
	if c.Bias == 0 {
		return 0.5
	}
	return c.Bias
}

// Sidewinder sweeps each row eastward, accumulating a run of cells.
// At each cell with both an east and a north option, a biased coin
// decides between extending the run east or closing it out by carving
// north from a random member of the run. The top row has no north
// option and becomes a single corridor.
//
// Only cells that actually have a north neighbor join the run, so the
// algorithm survives masked grids where a run member might sit under
// a hole. Glued topologies (cylinder, Möbius) and polar grids have no
// consistent east sweep and are refused; use [Inwinder] for polar.
func Sidewinder(g *maze.Grid, rng *rand.Rand, cfg SidewinderConfig) error {
	switch g.Topology() {
	case maze.TopologyCylinder, maze.TopologyMoebius, maze.TopologyPolar:
		return errors.New(errors.ErrCodeUnsupportedTopology,
			"sidewinder has no consistent sweep order on a %s grid", g.Topology())
	}
	if err := errors.ValidateBias(cfg.bias()); err != nil {
		return err
	}
	rows, err := requireRows(g)
	if err != nil {
		return err
	}
	for _, row := range rows {
		var run [][2]*maze.Cell
		for _, c := range row {
			if north := c.Neighbor(maze.North); north != nil {
				run = append(run, [2]*maze.Cell{c, north})
			}
			east := c.Neighbor(maze.East)
			switch {
			case east != nil && len(run) > 0:
				if rng.Float64() < cfg.bias() {
					if err := g.Link(c, east); err != nil {
						return err
					}
				} else {
					pair := pick(rng, run)
					if err := g.Link(pair[0], pair[1]); err != nil {
						return err
					}
					run = run[:0]
				}
			case east != nil:
				if err := g.Link(c, east); err != nil {
					return err
				}
			case len(run) > 0:
				pair := pick(rng, run)
				if err := g.Link(pair[0], pair[1]); err != nil {
					return err
				}
				run = run[:0]
			}
		}
	}
	return nil
}

// Inwinder is the sidewinder adaptation for theta grids. Each
// latitude starts its sweep at a random cell and proceeds
// counterclockwise; runs close out by carving inward from a random
// member. The pole latitude, which has no inward, is carved into a
// single arc rather than a circuit.
func Inwinder(g *maze.Grid, rng *rand.Rand, cfg SidewinderConfig) error {
	if g.Topology() != maze.TopologyPolar {
		return errors.New(errors.ErrCodeUnsupportedTopology,
			"inwinder requires a polar grid, have %s", g.Topology())
	}
	if err := errors.ValidateBias(cfg.bias()); err != nil {
		return err
	}
	rows, err := requireRows(g)
	if err != nil {
		return err
	}
	for i, row := range rows {
		n := len(row)
		start := rng.Intn(n)
		if i == 0 {
			// Pole latitude: an arc through all pole cells, stopping
			// one short of closing the circuit.
			for j := 0; j < n-1; j++ {
				c := row[(start+j)%n]
				if ccw := c.Neighbor(maze.CounterClockwise); ccw != nil {
					if err := g.Link(c, ccw); err != nil {
						return err
					}
				}
			}
			continue
		}
		var run []*maze.Cell
		for j := 0; j < n; j++ {
			c := row[(start+j)%n]
			run = append(run, c)
			if j < n-1 && rng.Float64() < cfg.bias() {
				if err := g.Link(c, c.Neighbor(maze.CounterClockwise)); err != nil {
					return err
				}
				continue
			}
			riser := pick(rng, run)
			if err := g.Link(riser, riser.Neighbor(maze.Inward)); err != nil {
				return err
			}
			run = run[:0]
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "sidewinder",
		Aliases: []string{"sw"},
		Summary: "eastward runs closed out by a random northward rise",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return Sidewinder(g, rng, SidewinderConfig{})
		},
	})
	Register(Algorithm{
		Name:    "inwinder",
		Aliases: []string{"iw"},
		Summary: "sidewinder for theta grids, ccw runs with inward rises",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return Inwinder(g, rng, SidewinderConfig{})
		},
	})
}
