package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// EllerConfig parameterizes Eller's algorithm.
type EllerConfig struct {
	// LateralBias is the probability of carving each in-row edge
	// between differently colored cells. Zero means the default 0.5.
	LateralBias float64
	// DropBias is the probability of an extra drop into the next
	// row beyond the one mandatory drop per color. Zero means the
	// default 0.5.
	DropBias float64
}

func defaultBias(b float64) float64 {
	if b == 0 {
		return 0.5
	}
	return b
}

// ellerColoring is the component coloring Eller's algorithm threads
// through its row sweep. Cells are colored lazily so only the
// current and next rows ever hold colors.
type ellerColoring struct {
	next   int
	colors map[*maze.Cell]int
	comps  map[int][]*maze.Cell
}

func newEllerColoring() *ellerColoring {
	return &ellerColoring{
		colors: map[*maze.Cell]int{},
		comps:  map[int][]*maze.Cell{},
	}
}

func (ec *ellerColoring) colorOf(c *maze.Cell) int {
	if col, ok := ec.colors[c]; ok {
		return col
	}
	col := ec.next
	ec.next++
	ec.colors[c] = col
	ec.comps[col] = []*maze.Cell{c}
	return col
}

// merge carves the edge unless both cells already share a color, and
// recolors the second component to match the first.
func (ec *ellerColoring) merge(g *maze.Grid, u, v *maze.Cell) (bool, error) {
	cu, cv := ec.colorOf(u), ec.colorOf(v)
	if cu == cv {
		return false, nil
	}
	if err := g.Link(u, v); err != nil {
		return false, err
	}
	for _, c := range ec.comps[cv] {
		ec.colors[c] = cu
		ec.comps[cu] = append(ec.comps[cu], c)
	}
	delete(ec.comps, cv)
	return true, nil
}

// Eller carves a spanning tree in a single sweep over the rows,
// keeping only a component coloring of the current row: some
// same-row edges between different components are carved at random,
// then every component drops at least one passage into the next row.
// The final row is closed out by carving every edge that still joins
// two components. Polar grids sweep latitudes with counterclockwise
// laterals and inward drops; topologies with no row order are
// refused.
//
// Memory stays proportional to a row rather than the grid, which is
// the algorithm's reason to exist: rows could even be generated and
// discarded on the fly.
func Eller(g *maze.Grid, rng *rand.Rand, cfg EllerConfig) error {
	lateralBias := defaultBias(cfg.LateralBias)
	dropBias := defaultBias(cfg.DropBias)
	if err := errors.ValidateBias(lateralBias); err != nil {
		return err
	}
	if err := errors.ValidateBias(dropBias); err != nil {
		return err
	}
	rows, err := requireRows(g)
	if err != nil {
		return err
	}

	lateral, drop := maze.East, maze.South
	if g.Topology() == maze.TopologyPolar {
		lateral, drop = maze.CounterClockwise, maze.Inward
	}

	ec := newEllerColoring()
	for i, row := range rows {
		var rowEdges [][2]*maze.Cell
		for _, u := range row {
			if v := u.Neighbor(lateral); v != nil && v.Index().Row == u.Index().Row {
				rowEdges = append(rowEdges, [2]*maze.Cell{u, v})
			}
		}
		shuffleEdges(rng, rowEdges)

		if i+1 >= len(rows) {
			// Last row: tie off the loose threads.
			for _, e := range rowEdges {
				if _, err := ec.merge(g, e[0], e[1]); err != nil {
					return err
				}
			}
			break
		}

		for _, e := range rowEdges {
			if rng.Float64() < lateralBias {
				if _, err := ec.merge(g, e[0], e[1]); err != nil {
					return err
				}
			}
		}

		// Drops are keyed on the upper cell so polar fan-outs, where
		// several outer cells share one inward neighbor, resolve to
		// the cell in the current row.
		var colEdges [][2]*maze.Cell
		for _, v := range rows[i+1] {
			if u := v.Neighbor(drop); u != nil && u.Index().Row == i {
				colEdges = append(colEdges, [2]*maze.Cell{u, v})
			}
		}
		shuffleEdges(rng, colEdges)

		dropped := map[int]bool{}
		for _, e := range colEdges {
			cu := ec.colorOf(e[0])
			if !dropped[cu] || rng.Float64() < dropBias {
				if _, err := ec.merge(g, e[0], e[1]); err != nil {
					return err
				}
				dropped[cu] = true
			}
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "eller",
		Aliases: []string{"e", "ellers"},
		Summary: "single row sweep with mandatory drops per component",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return Eller(g, rng, EllerConfig{})
		},
	})
}
