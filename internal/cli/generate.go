package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

// generateCommand creates the generate command for carving mazes.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		maskRef string
		name    string
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze and write it as a JSON document",
		Long: `Generate a maze and write it as a JSON document.

The topology and algorithm flags select what to build and how to carve
it; the same seed always produces the same maze. The output document
can be rendered with 'render', paged with 'view', or saved under a
name with --name.

Examples:
  mazekit generate --rows 20 --cols 20 -o maze.json
  mazekit generate --topology polar --rows 8 --algorithm wilson
  mazekit generate --algorithm sidewinder --bias 0.8 --braid 0.5
  mazekit generate --topology masked --mask cat.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts = c.mergeGenerateFlags(cmd, opts)
			mask, err := c.cfg.resolveMask(maskRef)
			if err != nil {
				return err
			}
			opts.Mask = mask
			return c.runGenerate(cmd.Context(), opts, output, name)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "save the maze to the archive under this name")
	cmd.Flags().StringVarP(&opts.Topology, "topology", "t", "", "grid topology: rectangular (default), cylinder, moebius, polar, delta, sigma, upsilon, oblong, multilevel, masked, weave, preweave")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "grid rows")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "grid columns")
	cmd.Flags().IntVar(&opts.Levels, "levels", 0, "floors (multilevel) or neighborhood size (oblong)")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "generation algorithm or alias (e.g. recursive-backtracker, rb, wilson)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (same seed, same maze)")
	cmd.Flags().Float64Var(&opts.Bias, "bias", 0, "directional bias for the biased algorithms, in [0, 1]")
	cmd.Flags().Float64Var(&opts.Braid, "braid", 0, "fraction of dead ends to remove, in [0, 1]")
	cmd.Flags().StringVar(&maskRef, "mask", "", "mask file or a named mask from the config (masked topology)")
	cmd.Flags().IntVar(&opts.PoleCells, "pole-cells", 0, "cells on the innermost polar ring")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

// mergeGenerateFlags overlays config file defaults under any flags the
// user did not set on the command line.
func (c *CLI) mergeGenerateFlags(cmd *cobra.Command, opts pipeline.Options) pipeline.Options {
	fromFile := c.cfg.generateOptions()

	if !cmd.Flags().Changed("topology") {
		opts.Topology = fromFile.Topology
	}
	if !cmd.Flags().Changed("rows") {
		opts.Rows = fromFile.Rows
	}
	if !cmd.Flags().Changed("cols") {
		opts.Cols = fromFile.Cols
	}
	if !cmd.Flags().Changed("levels") {
		opts.Levels = fromFile.Levels
	}
	if !cmd.Flags().Changed("algorithm") {
		opts.Algorithm = fromFile.Algorithm
	}
	if !cmd.Flags().Changed("seed") {
		opts.Seed = fromFile.Seed
	}
	if !cmd.Flags().Changed("bias") {
		opts.Bias = fromFile.Bias
	}
	if !cmd.Flags().Changed("braid") {
		opts.Braid = fromFile.Braid
	}
	return opts
}

// runGenerate carves the maze, writes the document, and optionally
// archives it.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output, name string) error {
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}

	runner, err := c.runner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Carving %s maze with %s...", opts.Topology, opts.Algorithm))
	spinner.Start()

	g, cacheHit, err := runner.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if name != "" {
		if err := c.saveToArchive(ctx, name, opts, g); err != nil {
			return err
		}
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := mazeio.WriteJSON(g, out); err != nil {
		return fmt.Errorf("write maze: %w", err)
	}

	census := maze.TakeCensus(g)
	if output != "" {
		printSuccess("Maze generated")
		printFile(output)
		printStats(census.Cells, census.Passages, census.DeadEnds, cacheHit)
		printNewline()
		printNextStep("Render", fmt.Sprintf("%s render %s", appName, output))
	}
	return nil
}
