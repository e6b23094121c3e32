package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// VertexDiscipline selects how the vertex growing tree prices
// frontier cells. The discipline is the whole personality of the
// algorithm: it decides which frontier cell is claimed next and so
// spans the texture spectrum from breadth-first stars to
// depth-first rivers.
type VertexDiscipline int

const (
	// CostRandom prices each cell with an independent uniform
	// random cost. This is the "true Prim" texture.
	CostRandom VertexDiscipline = iota
	// CostUniform prices every cell equally, so insertion order
	// breaks all ties and growth spreads in waves ("simple Prim").
	CostUniform
	// CostLIFO makes each newly met frontier cell the cheapest yet,
	// so growth plunges like a depth-first search.
	CostLIFO
	// CostFIFO makes each newly met frontier cell the priciest yet,
	// so the oldest frontier is served first, like breadth-first
	// search.
	CostFIFO
)

// GrowingTreeConfig parameterizes [GrowingTree].
type GrowingTreeConfig struct {
	Discipline VertexDiscipline
}

// GrowingTree grows a spanning tree by repeatedly claiming the
// cheapest cell on the frontier and carving to it from its cheapest
// already-claimed neighbor, ties broken at random. Cell costs come
// from the configured discipline. Disconnected grids are spanned
// component by component.
func GrowingTree(g *maze.Grid, rng *rand.Rand, cfg GrowingTreeConfig) error {
	costs := map[*maze.Cell]float64{}
	var seq float64
	costOf := func(c *maze.Cell) float64 {
		if v, ok := costs[c]; ok {
			return v
		}
		var v float64
		switch cfg.Discipline {
		case CostRandom:
			v = rng.Float64()
		case CostLIFO:
			seq--
			v = seq
		case CostFIFO:
			seq++
			v = seq
		case CostUniform:
			v = 1
		default:
			v = 1
		}
		costs[c] = v
		return v
	}

	visited := map[*maze.Cell]bool{}
	frontier := map[*maze.Cell]bool{}
	var pq maze.PriorityQueue[*maze.Cell]
	extend := func(v *maze.Cell) {
		nbrs := g.Neighbors(v)
		shuffleCells(rng, nbrs)
		for _, w := range nbrs {
			if !visited[w] && !frontier[w] {
				frontier[w] = true
				pq.Push(costOf(w), w)
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
		extend(start)
		for pq.Len() > 0 {
			v, _ := pq.Pop()
			if visited[v] {
				continue
			}
			via := cheapestVisitedNeighbor(g, rng, v, visited, costOf)
			if via == nil {
				// A weave carve severed the candidate; let a later
				// frontier extension queue it again.
				delete(frontier, v)
				continue
			}
			if err := g.Link(via, v); err != nil {
				return err
			}
			visited[v] = true
			delete(frontier, v)
			extend(v)
		}
	}
	return nil
}

// cheapestVisitedNeighbor picks the visited neighbor of v with the
// lowest cost, choosing uniformly among ties.
func cheapestVisitedNeighbor(g *maze.Grid, rng *rand.Rand, v *maze.Cell,
	visited map[*maze.Cell]bool, costOf func(*maze.Cell) float64) *maze.Cell {
	var vias []*maze.Cell
	best := 0.0
	for _, nbr := range g.Neighbors(v) {
		if !visited[nbr] {
			continue
		}
		c := costOf(nbr)
		switch {
		case len(vias) == 0 || c < best:
			vias = []*maze.Cell{nbr}
			best = c
		case c == best:
			vias = append(vias, nbr)
		}
	}
	if len(vias) == 0 {
		return nil
	}
	return pick(rng, vias)
}

// EdgeDiscipline selects which queued frontier edge the edgewise
// growing tree carves next.
type EdgeDiscipline int

const (
	// EdgeLIFO pops the newest edge; the texture resembles the
	// recursive backtracker.
	EdgeLIFO EdgeDiscipline = iota
	// EdgeFIFO pops the oldest edge; the texture resembles
	// breadth-first search.
	EdgeFIFO
	// EdgeMIFO pops the median edge, an odd middle ground.
	EdgeMIFO
	// EdgeRIFO pops a uniformly random edge, like simplified Prim.
	EdgeRIFO
	// EdgeMixed flips a biased coin between newest and random on
	// every pop.
	EdgeMixed
)

// EdgeGrowingTreeConfig parameterizes [EdgeGrowingTree].
type EdgeGrowingTreeConfig struct {
	Discipline EdgeDiscipline
	// Bias is the probability of the newest-edge branch under
	// [EdgeMixed]; zero means use the default of 0.5.
	Bias float64
}

func (c EdgeGrowingTreeConfig) bias() float64 {
	if c.Bias == 0 {
		return 0.5
	}
	return c.Bias
}

// EdgeGrowingTree grows a spanning tree from a queue of frontier
// edges rather than frontier cells, carving whichever queued edge
// the discipline serves next, provided its far cell is still
// unclaimed. Disconnected grids are spanned component by component.
func EdgeGrowingTree(g *maze.Grid, rng *rand.Rand, cfg EdgeGrowingTreeConfig) error {
	if cfg.Discipline == EdgeMixed {
		if err := errors.ValidateBias(cfg.bias()); err != nil {
			return err
		}
	}
	visited := map[*maze.Cell]bool{}
	var queue [][2]*maze.Cell
	extend := func(v *maze.Cell) {
		nbrs := g.Neighbors(v)
		shuffleCells(rng, nbrs)
		for _, w := range nbrs {
			if !visited[w] {
				queue = append(queue, [2]*maze.Cell{v, w})
			}
		}
	}
	pop := func() [2]*maze.Cell {
		var i int
		switch cfg.Discipline {
		case EdgeFIFO:
			i = 0
		case EdgeMIFO:
			i = len(queue) / 2
		case EdgeRIFO:
			i = rng.Intn(len(queue))
		case EdgeMixed:
			if rng.Float64() < cfg.bias() {
				i = len(queue) - 1
			} else {
				i = rng.Intn(len(queue))
			}
		default: // EdgeLIFO
			i = len(queue) - 1
		}
		e := queue[i]
		queue = append(queue[:i], queue[i+1:]...)
		return e
	}

	cells := g.Cells()
	shuffleCells(rng, cells)
	for _, start := range cells {
		if visited[start] {
			continue
		}
		visited[start] = true
		extend(start)
		for len(queue) > 0 {
			e := pop()
			u, v := e[0], e[1]
			if visited[v] || !stillAdjacent(g, u, v) {
				continue
			}
			if err := g.Link(u, v); err != nil {
				return err
			}
			visited[v] = true
			extend(v)
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "growing-tree",
		Aliases: []string{"gt", "true-prim"},
		Summary: "frontier growth priced per cell, texture set by discipline",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return GrowingTree(g, rng, GrowingTreeConfig{Discipline: CostRandom})
		},
	})
	Register(Algorithm{
		Name:    "growing-tree-edge",
		Aliases: []string{"gte"},
		Summary: "frontier growth served from an edge queue",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return EdgeGrowingTree(g, rng, EdgeGrowingTreeConfig{Discipline: EdgeLIFO})
		},
	})
}
