package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

// renderCommand creates the render command for turning maze documents
// into artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [maze.json]",
		Short: "Render a maze document to txt, dot, svg, png, or pdf",
		Long: `Render a maze document to one or more output formats.

The maze document comes from 'generate' (or the archive via
'archive show'). Text output supports ascii and unicode styles;
svg, png, and pdf go through graphviz. Results are cached locally
for faster subsequent runs.

Examples:
  mazekit render maze.json                     # unicode text to stdout
  mazekit render maze.json -f svg -o maze.svg
  mazekit render maze.json -f txt,svg,png -o maze`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFile := c.cfg.renderOptions()
			if formatsStr != "" {
				opts.Formats = parseFormats(formatsStr)
			} else if len(fromFile.Formats) > 0 {
				opts.Formats = fromFile.Formats
			} else {
				opts.Formats = parseFormats("")
			}
			if !cmd.Flags().Changed("style") {
				opts.Style = fromFile.Style
			}
			if !cmd.Flags().Changed("scale") {
				opts.Scale = fromFile.Scale
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): txt (default), dot, svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "text style: unicode (default), ascii")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "raster scale factor for png output")

	return cmd
}

// runRender loads the maze document and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	g, err := mazeio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load maze %s: %w", input, err)
	}

	runner, err := c.runner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, g, "", opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(g, artifacts, opts.Formats, input, output, cacheHit)
}

// writeArtifacts writes each rendered format to its output file. A
// single format honors --output exactly (stdout when empty); multiple
// formats derive per-format paths from the base path.
func writeArtifacts(g *maze.Grid, artifacts map[string][]byte, formats []string, input, output string, cacheHit bool) error {
	if len(formats) == 1 {
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		if _, err := out.Write(artifacts[formats[0]]); err != nil {
			return err
		}
		if output != "" {
			printRenderSummary(g, []string{output}, cacheHit)
		}
		return nil
	}

	base := basePath(output, input)
	var written []string
	for _, format := range formats {
		path := base + "." + format
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(artifacts[format]); err != nil {
			out.Close()
			return err
		}
		out.Close()
		written = append(written, path)
	}

	printRenderSummary(g, written, cacheHit)
	return nil
}

func printRenderSummary(g *maze.Grid, paths []string, cacheHit bool) {
	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	census := maze.TakeCensus(g)
	printStats(census.Cells, census.Passages, census.DeadEnds, cacheHit)
}

// basePath derives the base output path from the output and input
// paths. A known format extension on output is stripped so
// "maze.svg" and "maze" both yield "maze".
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
