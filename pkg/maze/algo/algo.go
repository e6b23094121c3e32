package algo

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// Func carves a maze into the grid using randomness from rng only.
type Func func(g *maze.Grid, rng *rand.Rand) error

// Algorithm is a registered generation algorithm with its default
// configuration. Parameterized variants are exposed as package
// functions taking a config struct; the registry carries the
// defaults a CLI or API can dispatch on by name.
type Algorithm struct {
	Name    string
	Aliases []string
	Summary string
	Run     Func
}

var registry = map[string]Algorithm{}
var aliases = map[string]string{}

// Register adds an algorithm to the registry. It panics on duplicate
// names or aliases; registration happens in package init functions
// where a duplicate is a programming error.
func Register(a Algorithm) {
	key := strings.ToLower(a.Name)
	if _, dup := registry[key]; dup {
		panic("algo: duplicate algorithm " + a.Name)
	}
	registry[key] = a
	for _, al := range a.Aliases {
		al = strings.ToLower(al)
		if _, dup := aliases[al]; dup {
			panic("algo: duplicate alias " + al)
		}
		aliases[al] = key
	}
}

// Lookup resolves an algorithm by name or alias, case-insensitively.
func Lookup(name string) (Algorithm, error) {
	key := strings.ToLower(name)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	a, ok := registry[key]
	if !ok {
		return Algorithm{}, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", name)
	}
	return a, nil
}

// Names returns the registered algorithm names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, registry[k].Name)
	}
	sort.Strings(out)
	return out
}

// All returns every registered algorithm sorted by name.
func All() []Algorithm {
	out := make([]Algorithm, 0, len(registry))
	for _, name := range Names() {
		a, _ := Lookup(name)
		out = append(out, a)
	}
	return out
}

// requireConnected rejects grids whose potential adjacency graph has
// more than one component. Algorithms that walk or grow from a single
// start cell need this; edge-queue algorithms (the Kruskal family)
// degrade to a spanning forest instead and skip the check.
func requireConnected(g *maze.Grid) error {
	if !g.Connected() {
		return errors.New(errors.ErrCodeDisconnected, "%s grid is not connected", g.Topology())
	}
	return nil
}

// requireRows rejects topologies with no consistent row traversal
// order, which the row-sweep algorithms (sidewinder, Eller's,
// recursive division delegates) depend on.
func requireRows(g *maze.Grid) ([][]*maze.Cell, error) {
	rows := g.EachRow()
	if rows == nil {
		return nil, errors.New(errors.ErrCodeUnsupportedTopology, "%s grid has no row traversal order", g.Topology())
	}
	return rows, nil
}

// requireStaticNeighbors rejects grids whose potential adjacency can
// change while carving. The deferred-commit walkers record cell pairs
// during the walk and link them afterwards; on a weave grid an
// earlier commit can tunnel under a platform and re-point the slots a
// later pair depends on, so the pair is no longer adjacent when its
// turn comes. Preweave grids are fine: their tunnels are fixed before
// generation runs.
func requireStaticNeighbors(g *maze.Grid) error {
	if g.Topology() == maze.TopologyWeave {
		return errors.New(errors.ErrCodeUnsupportedTopology, "%s grid grows tunnel neighbors while carving", g.Topology())
	}
	return nil
}

// stillAdjacent re-checks potential adjacency at carve time. Frontier
// algorithms queue candidate edges ahead of carving, and on weave
// grids a queued tunnel candidate can be invalidated when an earlier
// carve gives its platform a branch passage.
func stillAdjacent(g *maze.Grid, u, v *maze.Cell) bool {
	for _, w := range g.Neighbors(u) {
		if w == v {
			return true
		}
	}
	return false
}

// shuffleCells permutes a cell slice in place.
func shuffleCells(rng *rand.Rand, cells []*maze.Cell) {
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
}

// shuffleEdges permutes an edge slice in place.
func shuffleEdges(rng *rand.Rand, edges [][2]*maze.Cell) {
	rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})
}

// pick returns a uniformly random element of a non-empty slice.
func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
