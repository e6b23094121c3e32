package pipeline

import (
	"math/rand"
	"strings"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/maze/algo"
	"github.com/mazekit/mazekit/pkg/maze/transform"
)

// Generate builds a grid of the requested topology and carves a maze
// into it. The result is fully determined by the options: the same
// topology, dimensions, algorithm, seed, and transforms always produce
// the same maze.
func Generate(opts Options) (*maze.Grid, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}

	g, err := buildGrid(opts)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	if err := carve(g, rng, opts); err != nil {
		return nil, err
	}

	if opts.Braid > 0 {
		report, err := transform.Braid(g, rng, opts.Braid)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("braided maze",
			"found", report.Found,
			"removed", report.Removed)
	}

	return g, nil
}

// buildGrid constructs an uncarved grid for the options' topology.
func buildGrid(opts Options) (*maze.Grid, error) {
	switch opts.Topology {
	case maze.TopologyRectangular:
		return maze.NewRectangular(opts.Rows, opts.Cols)
	case maze.TopologyCylinder:
		return maze.NewCylinder(opts.Rows, opts.Cols)
	case maze.TopologyMoebius:
		return maze.NewMoebius(opts.Rows, opts.Cols)
	case maze.TopologyPolar:
		return maze.NewPolar(opts.Rows, maze.PolarConfig{PoleCells: opts.PoleCells})
	case maze.TopologyDelta:
		return maze.NewDelta(opts.Rows, opts.Cols)
	case maze.TopologySigma:
		return maze.NewSigma(opts.Rows, opts.Cols)
	case maze.TopologyUpsilon:
		return maze.NewUpsilon(opts.Rows, opts.Cols)
	case maze.TopologyOblong:
		levels := opts.Levels
		if levels == 0 {
			levels = 1
		}
		return maze.NewOblong(opts.Rows, opts.Cols, levels, maze.Neighborhood4)
	case maze.TopologyMultilevel:
		floors := opts.Levels
		if floors == 0 {
			floors = 2
		}
		return maze.NewMultilevel(opts.Rows, opts.Cols, floors)
	case maze.TopologyMasked:
		mask, err := maze.ReadMask(strings.NewReader(opts.Mask))
		if err != nil {
			return nil, err
		}
		return maze.NewMasked(mask)
	case maze.TopologyWeave:
		return maze.NewWeave(opts.Rows, opts.Cols)
	case maze.TopologyPreweave:
		return maze.NewPreweave(opts.Rows, opts.Cols)
	default:
		return nil, errors.New(errors.ErrCodeInvalidTopology, "invalid topology: %q", opts.Topology)
	}
}

// carve runs the requested algorithm. The biased families take the
// options' bias through their config structs; every other algorithm
// runs with its registered defaults and ignores the bias.
func carve(g *maze.Grid, rng *rand.Rand, opts Options) error {
	if opts.Bias != 0 {
		switch opts.Algorithm {
		case "sidewinder":
			return algo.Sidewinder(g, rng, algo.SidewinderConfig{Bias: opts.Bias})
		case "inwinder":
			return algo.Inwinder(g, rng, algo.SidewinderConfig{Bias: opts.Bias})
		case "binary-tree":
			return algo.BinaryTree(g, rng, algo.BinaryTreeConfig{Bias: opts.Bias})
		case "binary-tree-cylinder":
			return algo.BinaryTreeCylinder(g, rng, algo.BinaryTreeConfig{Bias: opts.Bias})
		case "binary-tree-polar":
			return algo.BinaryTreePolar(g, rng, algo.BinaryTreeConfig{Bias: opts.Bias})
		case "eller":
			return algo.Eller(g, rng, algo.EllerConfig{LateralBias: opts.Bias})
		case "hybrid-walk":
			return algo.HybridWalk(g, rng, algo.HybridWalkConfig{Cutoff: opts.Bias})
		}
	}

	a, err := algo.Lookup(opts.Algorithm)
	if err != nil {
		return err
	}
	return a.Run(g, rng)
}
