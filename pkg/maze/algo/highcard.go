package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/maze"
)

// HighCardWins carves a spanning forest by dealing every cell into a
// round of high card wins: each cell in turn picks a random neighbor
// from a different component and carves to it. Passes repeat over the
// same shuffled deal until the components stop merging or only one
// remains. The game usually ends with a single component on
// connected grids, but no guarantee is made; running a braid or
// completion pass afterwards is the usual remedy when it matters.
//
// Passages already carved before the game starts are folded into the
// initial coloring, so the algorithm composes with preintegrated
// tunnels and templates.
func HighCardWins(g *maze.Grid, rng *rand.Rand) error {
	ds := maze.NewDisjointSet(g)
	for _, e := range g.Links() {
		ds.Add(e[0])
		ds.Add(e[1])
		ds.Union(e[0], e[1])
	}

	deal := g.Cells()
	shuffleCells(rng, deal)

	prev := ds.Count()
	for {
		for _, cell := range deal {
			var players []*maze.Cell
			for _, nbr := range g.Neighbors(cell) {
				if !ds.Same(cell, nbr) {
					players = append(players, nbr)
				}
			}
			if len(players) == 0 {
				continue
			}
			winner := pick(rng, players)
			if err := g.Link(cell, winner); err != nil {
				return err
			}
			ds.Union(cell, winner)
			if u := undercellBetween(g, cell, winner); u != nil {
				ds.Add(u)
				ds.Union(u, cell)
			}
		}
		cur := ds.Count()
		if cur <= 1 || cur == prev {
			return nil
		}
		prev = cur
	}
}

// undercellBetween finds the undercell carrying a freshly carved
// tunnel passage between two cells two steps apart, or nil when the
// passage was an ordinary one.
func undercellBetween(g *maze.Grid, a, b *maze.Cell) *maze.Cell {
	if a.Linked(b) {
		return nil
	}
	for _, l := range a.Links() {
		if l.Kind() == maze.KindUnder && l.Linked(b) {
			return l
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "high-card-wins",
		Aliases: []string{"hcw", "high-card"},
		Summary: "every cell carves to a random rival component, in passes",
		Run:     HighCardWins,
	})
}
