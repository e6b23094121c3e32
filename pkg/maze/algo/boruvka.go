package algo

import (
	"math/rand"

	"github.com/spakin/disjoint"

	"github.com/mazekit/mazekit/pkg/maze"
)

// BoruvkaConfig parameterizes Borůvka's algorithm.
type BoruvkaConfig struct {
	// Weight assigns a weight to the grid edge between two cells.
	// Nil means a shuffled unique integer per edge, which satisfies
	// the algorithm's injectivity requirement and yields a uniform
	// random minimum spanning tree texture.
	//
	// A non-injective Weight voids the minimality guarantee: when
	// two components nominate different cheapest edges into each
	// other, both passages are carved and the circuit stands. The
	// carved maze is then braided rather than perfect.
	Weight func(a, b *maze.Cell) float64
}

type boruvkaEdge struct {
	a, b   *maze.Cell
	weight float64
}

// Boruvka carves a minimum weight spanning tree in passes: every
// component nominates its cheapest outgoing edge, then all nominated
// edges are carved at once. Components merge pairwise or in chains,
// so the component count at least halves per pass and the whole run
// takes O(log n) passes. On a disconnected grid each component of
// the adjacency graph ends up spanned separately.
//
// The edge set is frozen before the first pass, so dynamic weave
// candidates never appear; weave crossings must be preintegrated on
// a preweave grid before running.
func Boruvka(g *maze.Grid, rng *rand.Rand, cfg BoruvkaConfig) error {
	raw := g.Edges()
	edges := make([]*boruvkaEdge, 0, len(raw))
	if cfg.Weight != nil {
		for _, e := range raw {
			edges = append(edges, &boruvkaEdge{a: e[0], b: e[1], weight: cfg.Weight(e[0], e[1])})
		}
	} else {
		weights := rng.Perm(len(raw))
		for i, e := range raw {
			edges = append(edges, &boruvkaEdge{a: e[0], b: e[1], weight: float64(weights[i])})
		}
	}

	ds := maze.NewDisjointSet(g)
	for ds.Count() > 1 {
		// Every live component nominates its cheapest outgoing edge.
		cheapest := map[*disjoint.Element]*boruvkaEdge{}
		for _, e := range edges {
			if e == nil {
				continue
			}
			ka, kb := ds.Find(e.a), ds.Find(e.b)
			if ka == kb {
				continue
			}
			if cur := cheapest[ka]; cur == nil || e.weight < cur.weight {
				cheapest[ka] = e
			}
			if cur := cheapest[kb]; cur == nil || e.weight < cur.weight {
				cheapest[kb] = e
			}
		}

		// Carve the nominations. Two components can nominate
		// distinct edges into each other when weights collide; both
		// get carved and the circuit survives, as documented on
		// [BoruvkaConfig.Weight].
		selected := map[*boruvkaEdge]bool{}
		for _, e := range cheapest {
			selected[e] = true
		}
		if len(selected) == 0 {
			break // remaining components are mutually unreachable
		}
		for i, e := range edges {
			if e == nil || !selected[e] {
				continue
			}
			edges[i] = nil
			if err := g.Link(e.a, e.b); err != nil {
				return err
			}
			ds.Union(e.a, e.b)
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "boruvka",
		Aliases: []string{"b", "boruvkas", "sollin"},
		Summary: "parallel-flavored MST, components merge in passes",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return Boruvka(g, rng, BoruvkaConfig{})
		},
	})
}
