package algo

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// BinaryTreeConfig parameterizes the binary tree family.
type BinaryTreeConfig struct {
	// Bias is the probability of carving the lateral candidate (east,
	// or counterclockwise on polar grids) when both candidates exist.
	// Zero means use the default of 0.5.
	Bias float64
}

func (c BinaryTreeConfig) bias() float64 {
	if c.Bias == 0 {
		return 0.5
	}
	return c.Bias
}

// BinaryTree carves a maze by visiting every cell once and flipping a
// biased coin between its east and north neighbors. The top row and
// the rightmost column each end up as one unbroken corridor, because
// cells there have only one candidate left — and the northeast corner
// has none, which is simply skipped.
//
// The plain variant requires a traversal order in which east and
// north always lead toward already-visited territory. Topologies that
// glue the east edge to the west (cylinder, Möbius) or have no global
// east (polar) break that order and are refused; use
// [BinaryTreeCylinder] or [BinaryTreePolar] instead.
func BinaryTree(g *maze.Grid, rng *rand.Rand, cfg BinaryTreeConfig) error {
	switch g.Topology() {
	case maze.TopologyCylinder, maze.TopologyMoebius, maze.TopologyPolar:
		return errors.New(errors.ErrCodeUnsupportedTopology,
			"binary tree has no consistent traversal order on a %s grid", g.Topology())
	}
	if err := errors.ValidateBias(cfg.bias()); err != nil {
		return err
	}
	for _, c := range g.Cells() {
		east, north := c.Neighbor(maze.East), c.Neighbor(maze.North)
		var pickCell *maze.Cell
		switch {
		case east != nil && north != nil:
			if rng.Float64() < cfg.bias() {
				pickCell = east
			} else {
				pickCell = north
			}
		case east != nil:
			pickCell = east
		case north != nil:
			pickCell = north
		default:
			continue // northeast corner
		}
		if err := g.Link(c, pickCell); err != nil {
			return err
		}
	}
	return nil
}

// BinaryTreeCylinder adapts the binary tree to east/west-glued grids
// by choosing a random run-terminator cell per row: the terminator
// carves only north, breaking the circular run so each row cannot
// close into a circuit.
func BinaryTreeCylinder(g *maze.Grid, rng *rand.Rand, cfg BinaryTreeConfig) error {
	if err := errors.ValidateBias(cfg.bias()); err != nil {
		return err
	}
	rows, err := requireRows(g)
	if err != nil {
		return err
	}
	for _, row := range rows {
		last := rng.Intn(len(row))
		for i, c := range row {
			east := c.Neighbor(maze.East)
			if i == last {
				east = nil // break the circular run
			}
			north := c.Neighbor(maze.North)
			var pickCell *maze.Cell
			switch {
			case east != nil && north != nil:
				if rng.Float64() < cfg.bias() {
					pickCell = east
				} else {
					pickCell = north
				}
			case east != nil:
				pickCell = east
			case north != nil:
				pickCell = north
			default:
				continue
			}
			if err := g.Link(c, pickCell); err != nil {
				return err
			}
		}
	}
	return nil
}

// BinaryTreePolar is the theta-grid variant: runs proceed
// counterclockwise within each latitude with a randomly chosen last
// cell per latitude excluded from lateral carving, and the inward
// direction plays the role of north.
func BinaryTreePolar(g *maze.Grid, rng *rand.Rand, cfg BinaryTreeConfig) error {
	if g.Topology() != maze.TopologyPolar {
		return errors.New(errors.ErrCodeUnsupportedTopology,
			"polar binary tree requires a polar grid, have %s", g.Topology())
	}
	if err := errors.ValidateBias(cfg.bias()); err != nil {
		return err
	}
	rows, err := requireRows(g)
	if err != nil {
		return err
	}
	for _, row := range rows {
		last := rng.Intn(len(row))
		for i, c := range row {
			lateral := c.Neighbor(maze.CounterClockwise)
			if i == last {
				lateral = nil // the run must end somewhere
			}
			inward := c.Neighbor(maze.Inward)
			var pickCell *maze.Cell
			switch {
			case lateral != nil && inward != nil:
				if rng.Float64() < cfg.bias() {
					pickCell = lateral
				} else {
					pickCell = inward
				}
			case lateral != nil:
				pickCell = lateral
			case inward != nil:
				pickCell = inward
			default:
				continue // pole cell in a one-cell latitude
			}
			if err := g.Link(c, pickCell); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	Register(Algorithm{
		Name:    "binary-tree",
		Aliases: []string{"bt", "binarytree"},
		Summary: "biased coin flip between east and north at every cell",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return BinaryTree(g, rng, BinaryTreeConfig{})
		},
	})
	Register(Algorithm{
		Name:    "binary-tree-cylinder",
		Aliases: []string{"btc"},
		Summary: "binary tree for glued grids, a random terminator breaks each row",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return BinaryTreeCylinder(g, rng, BinaryTreeConfig{})
		},
	})
	Register(Algorithm{
		Name:    "binary-tree-polar",
		Aliases: []string{"btp"},
		Summary: "binary tree for theta grids, runs ccw with inward rises",
		Run: func(g *maze.Grid, rng *rand.Rand) error {
			return BinaryTreePolar(g, rng, BinaryTreeConfig{})
		},
	})
}
