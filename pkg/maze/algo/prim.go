package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/maze"
)

// PrimConfig parameterizes Prim's algorithm.
type PrimConfig struct {
	// Weight assigns a weight to the grid edge between two cells.
	// Nil means a memoized uniform random weight per edge. This is
	// the edge-weighted form of the algorithm; the popular
	// "simplified Prim" that weights cells instead is available as
	// [HeapTree].
	Weight func(a, b *maze.Cell) float64
}

// Prim grows a minimum weight spanning tree from a random start
// cell, always carving the cheapest edge crossing the frontier
// between visited and unvisited territory. When the frontier empties
// with cells still unvisited the grid is disconnected; growth
// restarts in a fresh component and the result is a spanning forest.
func Prim(g *maze.Grid, rng *rand.Rand, cfg PrimConfig) error {
	memo := map[[2]*maze.Cell]float64{}
	weight := func(a, b *maze.Cell) float64 {
		if cfg.Weight != nil {
			return cfg.Weight(a, b)
		}
		key := [2]*maze.Cell{a, b}
		if b.Name() < a.Name() {
			key = [2]*maze.Cell{b, a}
		}
		w, ok := memo[key]
		if !ok {
			w = rng.Float64()
			memo[key] = w
		}
		return w
	}

	visited := map[*maze.Cell]bool{}
	var pq maze.PriorityQueue[[2]*maze.Cell]
	frontier := func(v *maze.Cell) {
		for _, w := range g.Neighbors(v) {
			if !visited[w] {
				pq.Push(weight(v, w), [2]*maze.Cell{v, w})
			}
		}
	}

	cells := g.Cells()
	shuffleCells(rng, cells)
	for _, start := range cells {
		if visited[start] {
			continue
		}
		visited[start] = true
		frontier(start)
		for pq.Len() > 0 {
			e, _ := pq.Pop()
			u, v := e[0], e[1]
			if visited[v] || !stillAdjacent(g, u, v) {
				continue
			}
			if err := g.Link(u, v); err != nil {
				return err
			}
			visited[v] = true
			frontier(v)
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "prim",
		Aliases: []string{"p", "prims", "truest-prim"},
		Summary: "edge-weighted frontier growth from a random start",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return Prim(g, rng, PrimConfig{})
		},
	})
}
