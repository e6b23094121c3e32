package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/maze"
)

// RecursiveBacktracker carves a maze by randomized depth-first
// search with an explicit stack. The walk plunges until it corners
// itself, then backtracks to the most recent cell with an unvisited
// neighbor. Produces long, winding corridors and few dead ends.
//
// On a disconnected grid the result spans only the start cell's
// component; callers wanting a forest should run it per component.
func RecursiveBacktracker(g *maze.Grid, rng *rand.Rand) error {
	if err := requireConnected(g); err != nil {
		return err
	}
	start := g.RandomCell(rng)
	visited := map[*maze.Cell]bool{start: true}
	var stack maze.Stack[*maze.Cell]
	stack.Push(start)

	for stack.Len() > 0 {
		cell, _ := stack.Peek()
		var fresh []*maze.Cell
		for _, nbr := range g.Neighbors(cell) {
			if !visited[nbr] {
				fresh = append(fresh, nbr)
			}
		}
		if len(fresh) == 0 {
			stack.Pop()
			continue
		}
		nbr := pick(rng, fresh)
		if err := g.Link(cell, nbr); err != nil {
			return err
		}
		visited[nbr] = true
		stack.Push(nbr)
	}
	return nil
}

// BFSTree carves a breadth-first spanning tree: neighbors of the
// frontier are claimed in waves spreading out from the start cell.
// The result is extremely biased, a star of short passages radiating
// from the start, which makes it useful as a degenerate reference
// texture rather than as a maze anyone would want to solve.
func BFSTree(g *maze.Grid, rng *rand.Rand) error {
	if err := requireConnected(g); err != nil {
		return err
	}
	start := g.RandomCell(rng)
	visited := map[*maze.Cell]bool{start: true}
	var queue maze.Queue[*maze.Cell]
	queue.Push(start)

	for queue.Len() > 0 {
		cell, _ := queue.Pop()
		nbrs := g.Neighbors(cell)
		shuffleCells(rng, nbrs)
		for _, nbr := range nbrs {
			if visited[nbr] || !stillAdjacent(g, cell, nbr) {
				continue
			}
			if err := g.Link(cell, nbr); err != nil {
				return err
			}
			visited[nbr] = true
			queue.Push(nbr)
		}
	}
	return nil
}

// HeapTreeConfig parameterizes the heap carver.
type HeapTreeConfig struct {
	// Priority assigns a cell's priority; cells with lower values are
	// claimed earlier. Nil means a uniform random priority per cell,
	// which yields a texture between the depth-first and
	// breadth-first extremes.
	Priority func(*maze.Cell) float64
}

// HeapTree carves a spanning tree by servicing a priority queue of
// (from, to) edges keyed on the destination cell's priority, with
// insertion order breaking ties. With uniform random priorities this
// behaves much like simplified Prim; with a crafted priority function
// it can be steered toward rooms, spirals, or gradients.
func HeapTree(g *maze.Grid, rng *rand.Rand, cfg HeapTreeConfig) error {
	if err := requireConnected(g); err != nil {
		return err
	}
	priorities := map[*maze.Cell]float64{}
	priority := func(c *maze.Cell) float64 {
		p, ok := priorities[c]
		if !ok {
			if cfg.Priority != nil {
				p = cfg.Priority(c)
			} else {
				p = rng.Float64()
			}
			priorities[c] = p
		}
		return p
	}

	var pq maze.PriorityQueue[[2]*maze.Cell]
	start := g.RandomCell(rng)
	pq.Push(priority(start), [2]*maze.Cell{nil, start})
	visited := map[*maze.Cell]bool{}

	for pq.Len() > 0 {
		entry, _ := pq.Pop()
		from, to := entry[0], entry[1]
		if visited[to] {
			continue
		}
		if from != nil {
			if !stillAdjacent(g, from, to) {
				continue
			}
			if err := g.Link(from, to); err != nil {
				return err
			}
		}
		visited[to] = true
		for _, nbr := range g.Neighbors(to) {
			if !visited[nbr] {
				pq.Push(priority(nbr), [2]*maze.Cell{to, nbr})
			}
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "recursive-backtracker",
		Aliases: []string{"rb", "dfs", "backtracker"},
		Summary: "randomized depth-first search, long winding corridors",
		Run:     RecursiveBacktracker,
	})
	Register(Algorithm{
		Name:    "bfs-tree",
		Aliases: []string{"bfs"},
		Summary: "breadth-first waves radiating from the start cell",
		Run:     BFSTree,
	})
	Register(Algorithm{
		Name:    "heap-tree",
		Aliases: []string{"heap"},
		Summary: "priority-queue carver, steerable via cell priorities",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return HeapTree(g, rng, HeapTreeConfig{})
		},
	})
}
