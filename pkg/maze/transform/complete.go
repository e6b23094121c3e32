package transform

import "github.com/mazekit/mazekit/pkg/maze"

// LinkAll carves every potential passage in the grid: mutual
// neighbor pairs become ordinary two-way passages and strictly
// one-way adjacencies become one-way arcs. The result is the
// complete maze of the grid, useful for exercising renderers and
// topology wiring rather than for solving.
func LinkAll(g *maze.Grid) error {
	type arc struct{ from, to *maze.Cell }
	seen := map[arc]bool{}
	for _, cell := range g.Cells() {
		for _, nbr := range cell.Neighbors() {
			seen[arc{cell, nbr}] = true
		}
	}
	for a := range seen {
		if !seen[arc{a.to, a.from}] {
			if err := g.LinkOneWay(a.from, a.to); err != nil {
				return err
			}
			continue
		}
		if a.from.Linked(a.to) {
			continue
		}
		if err := g.Link(a.from, a.to); err != nil {
			return err
		}
	}
	return nil
}
