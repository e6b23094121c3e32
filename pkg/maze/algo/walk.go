package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// AldousBroder carves an unbiased spanning tree with the
// first-entrance random walk: wander the grid, and whenever the walk
// first enters a cell, carve a passage back to its predecessor.
// Termination is probabilistic; the walk can take a long while to
// stumble into the final few cells.
func AldousBroder(g *maze.Grid, rng *rand.Rand) error {
	if err := requireConnected(g); err != nil {
		return err
	}
	cell := g.RandomCell(rng)
	visited := map[*maze.Cell]bool{cell: true}
	for len(visited) < g.Size() {
		nbr := pick(rng, g.Neighbors(cell))
		if !visited[nbr] {
			visited[nbr] = true
			if err := g.Link(cell, nbr); err != nil {
				return err
			}
		}
		cell = nbr
	}
	return nil
}

// ReverseAldousBroder is the last-exit variant: walk until every cell
// has been entered, recording for each cell the neighbor it most
// recently stepped to, then carve each cell's last exit. Hu, Lyons
// and Tang showed the resulting tree is uniformly distributed, same
// as first-entrance. Weave grids are refused: the walk records exits
// against adjacency that the commit pass itself can invalidate.
func ReverseAldousBroder(g *maze.Grid, rng *rand.Rand) error {
	if err := requireStaticNeighbors(g); err != nil {
		return err
	}
	if err := requireConnected(g); err != nil {
		return err
	}
	cell := g.RandomCell(rng)
	lastExit := map[*maze.Cell]*maze.Cell{}
	seen := map[*maze.Cell]bool{cell: true}
	for len(seen) < g.Size() {
		nbr := pick(rng, g.Neighbors(cell))
		lastExit[cell] = nbr
		seen[nbr] = true
		cell = nbr
	}
	for c, exit := range lastExit {
		if err := g.Link(c, exit); err != nil {
			return err
		}
	}
	return nil
}

// Wilson carves an unbiased spanning tree using loop-erased random
// walks: from a random unvisited cell, walk until the path touches
// the visited region, erasing any loop the moment the walk revisits a
// cell on its own path, then carve the surviving simple path. Weave
// grids are refused: carving one committed pair can tunnel under a
// platform and break the adjacency of a later pair on the same path.
func Wilson(g *maze.Grid, rng *rand.Rand) error {
	if err := requireStaticNeighbors(g); err != nil {
		return err
	}
	if err := requireConnected(g); err != nil {
		return err
	}
	visited := map[*maze.Cell]bool{g.RandomCell(rng): true}
	unvisited := make([]*maze.Cell, 0, g.Size())
	for _, c := range g.Cells() {
		if !visited[c] {
			unvisited = append(unvisited, c)
		}
	}
	for len(visited) < g.Size() {
		start := pick(rng, unvisited)
		if visited[start] {
			continue
		}
		path := loopErasedWalk(g, rng, start, visited)
		for i := 0; i+1 < len(path); i++ {
			visited[path[i]] = true
			if err := g.Link(path[i], path[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// loopErasedWalk walks from start until it hits the visited region,
// truncating the path back to the first occurrence whenever a cell on
// the path is revisited. The returned path ends on a visited cell.
func loopErasedWalk(g *maze.Grid, rng *rand.Rand, start *maze.Cell, visited map[*maze.Cell]bool) []*maze.Cell {
	path := []*maze.Cell{start}
	at := map[*maze.Cell]int{start: 0}
	cell := start
	for !visited[cell] {
		nbr := pick(rng, g.Neighbors(cell))
		if pos, looped := at[nbr]; looped {
			for _, erased := range path[pos+1:] {
				delete(at, erased)
			}
			path = path[:pos+1]
		} else {
			at[nbr] = len(path)
			path = append(path, nbr)
		}
		cell = nbr
	}
	return path
}

// HybridWalkConfig parameterizes the Aldous-Broder/Wilson hybrid.
type HybridWalkConfig struct {
	// Cutoff is the fraction of the grid left unvisited when the
	// algorithm switches from the first-entrance walk to loop-erased
	// walks. Zero means use the default of 0.5; 1 is pure Wilson and
	// values at or below a single cell's worth are pure Aldous-Broder.
	Cutoff float64
}

func (c HybridWalkConfig) cutoff() float64 {
	if c.Cutoff == 0 {
		return 0.5
	}
	return c.Cutoff
}

// HybridWalk runs Aldous-Broder until the unvisited region shrinks to
// the cutoff fraction of the grid, then finishes with Wilson's
// loop-erased walks. Aldous-Broder is fast while most of the grid is
// fresh and slow at the end; Wilson is the mirror image, so the
// hybrid avoids both slow phases. Whether the blend is still exactly
// uniform over spanning trees is an open question, so no distribution
// claim is made here. Weave grids are refused, as in [Wilson].
func HybridWalk(g *maze.Grid, rng *rand.Rand, cfg HybridWalkConfig) error {
	if err := requireStaticNeighbors(g); err != nil {
		return err
	}
	if err := requireConnected(g); err != nil {
		return err
	}
	if err := errors.ValidateFraction("cutoff", cfg.cutoff()); err != nil {
		return err
	}
	cutoffCount := int(float64(g.Size()) * cfg.cutoff())

	cell := g.RandomCell(rng)
	visited := map[*maze.Cell]bool{cell: true}
	for g.Size()-len(visited) > cutoffCount {
		nbr := pick(rng, g.Neighbors(cell))
		if !visited[nbr] {
			visited[nbr] = true
			if err := g.Link(cell, nbr); err != nil {
				return err
			}
		}
		cell = nbr
	}

	unvisited := make([]*maze.Cell, 0, g.Size()-len(visited))
	for _, c := range g.Cells() {
		if !visited[c] {
			unvisited = append(unvisited, c)
		}
	}
	for len(visited) < g.Size() {
		start := pick(rng, unvisited)
		if visited[start] {
			continue
		}
		path := loopErasedWalk(g, rng, start, visited)
		for i := 0; i+1 < len(path); i++ {
			visited[path[i]] = true
			if err := g.Link(path[i], path[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "aldous-broder",
		Aliases: []string{"ab", "first-entrance"},
		Summary: "unbiased first-entrance random walk",
		Run:     AldousBroder,
	})
	Register(Algorithm{
		Name:    "reverse-aldous-broder",
		Aliases: []string{"rab", "last-exit"},
		Summary: "unbiased last-exit random walk",
		Run:     ReverseAldousBroder,
	})
	Register(Algorithm{
		Name:    "wilson",
		Aliases: []string{"w"},
		Summary: "unbiased loop-erased random walks",
		Run:     Wilson,
	})
	Register(Algorithm{
		Name:    "hybrid-walk",
		Aliases: []string{"hybrid", "abw"},
		Summary: "Aldous-Broder start with a Wilson finish",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return HybridWalk(g, rng, HybridWalkConfig{})
		},
	})
}
