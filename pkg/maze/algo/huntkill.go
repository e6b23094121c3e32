package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/maze"
)

// HuntAndKill alternates two modes. Kill: random-walk on unvisited
// cells only, carving as it goes, until the walk corners itself with
// no unvisited neighbor. Hunt: scan the unvisited cells for one
// adjacent to visited territory, carve into it, and resume killing
// from there. Unlike the pure walk algorithms this never re-treads
// visited ground, at the cost of the hunt scans.
//
// Disconnected grids are tolerated: when a hunt finds no boundary
// cell, the walk restarts in a fresh component and the result is a
// spanning forest.
func HuntAndKill(g *maze.Grid, rng *rand.Rand) error {
	unvisited := make([]*maze.Cell, 0, g.Size())
	for _, c := range g.Cells() {
		unvisited = append(unvisited, c)
	}
	shuffleCells(rng, unvisited)

	pending := map[*maze.Cell]bool{}
	for _, c := range unvisited {
		pending[c] = true
	}
	cell := g.RandomCell(rng)
	delete(pending, cell)

	for len(pending) > 0 {
		// Kill: step to a random unvisited neighbor.
		var fresh []*maze.Cell
		for _, nbr := range g.Neighbors(cell) {
			if pending[nbr] {
				fresh = append(fresh, nbr)
			}
		}
		if len(fresh) > 0 {
			nbr := pick(rng, fresh)
			if err := g.Link(cell, nbr); err != nil {
				return err
			}
			cell = nbr
			delete(pending, cell)
			continue
		}

		// Hunt: find an unvisited cell bordering visited territory.
		found := false
		for _, cand := range unvisited {
			if !pending[cand] {
				continue
			}
			var settled []*maze.Cell
			for _, nbr := range g.Neighbors(cand) {
				if !pending[nbr] {
					settled = append(settled, nbr)
				}
			}
			if len(settled) > 0 {
				if err := g.Link(cand, pick(rng, settled)); err != nil {
					return err
				}
				cell = cand
				delete(pending, cell)
				found = true
				break
			}
		}
		if found {
			continue
		}
		// No boundary cell: the rest of the grid is in another
		// component. Restart the walk there.
		for _, cand := range unvisited {
			if pending[cand] {
				cell = cand
				delete(pending, cell)
				break
			}
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "hunt-and-kill",
		Aliases: []string{"hk", "huntandkill"},
		Summary: "unvisited-only random walk with boundary hunts",
		Run:     HuntAndKill,
	})
}
