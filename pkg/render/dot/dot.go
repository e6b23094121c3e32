// Package dot renders mazes of any topology through Graphviz: cells
// become nodes pinned at layout positions, passages become edges, and
// goccy/go-graphviz rasterizes the result to SVG, PNG, or PDF.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/render"
)

// Options configures DOT emission.
type Options struct {
	// Spacing is the distance between adjacent cells in layout units.
	// Zero means 1.
	Spacing float64

	// ShowGrid draws uncarved potential edges as faint dashed lines,
	// which makes the underlying topology visible around the maze.
	ShowGrid bool

	// Labels puts the cell coordinate inside each node.
	Labels bool
}

// Graph converts a maze to Graphviz DOT. Nodes carry pinned neato
// positions computed from the grid's topology, so the drawing keeps
// the maze's geometry: rings stay round, levels sit side by side, and
// weave undercells nest beside their platforms.
func Graph(g *maze.Grid, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.4];\n")
	buf.WriteString("  edge [dir=none];\n")
	buf.WriteString("\n")

	for _, c := range g.Cells() {
		x, y := position(g, c)
		attrs := fmt.Sprintf("pos=\"%.3f,%.3f!\"", x*spacing, y*spacing)
		if opts.Labels {
			attrs += fmt.Sprintf(", label=%q", c.Index().String())
		} else {
			attrs += ", label=\"\""
		}
		if c.Kind() == maze.KindUnder {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Name(), attrs)
	}

	buf.WriteString("\n")
	ord := map[*maze.Cell]int{}
	for i, c := range g.Cells() {
		ord[c] = i
	}
	for _, c := range g.Cells() {
		for _, l := range c.Links() {
			if !l.Linked(c) {
				// one-way arc, drawn with its arrowhead
				fmt.Fprintf(&buf, "  %q -> %q [dir=forward];\n", c.Name(), l.Name())
				continue
			}
			if ord[c] < ord[l] {
				fmt.Fprintf(&buf, "  %q -> %q;\n", c.Name(), l.Name())
			}
		}
		if !opts.ShowGrid {
			continue
		}
		for _, n := range c.Neighbors() {
			if c.Linked(n) || n.Linked(c) || ord[c] >= ord[n] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", c.Name(), n.Name())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// position maps a cell to planar layout coordinates.
func position(g *maze.Grid, c *maze.Cell) (float64, float64) {
	ix := c.Index()
	switch g.Topology() {
	case maze.TopologyPolar:
		size := g.RingSize(ix.Row)
		if size <= 1 {
			return 0, 0
		}
		theta := 2 * math.Pi * (float64(ix.Col) + 0.5) / float64(size)
		r := float64(ix.Row) + 0.5
		return r * math.Cos(theta), r * math.Sin(theta)
	case maze.TopologyDelta:
		// two triangles share a column unit
		return float64(ix.Col) * 0.5, float64(ix.Row)
	case maze.TopologySigma:
		// doubled half-rows: stack them at half height
		return float64(ix.Col), float64(ix.Row) * 0.5
	case maze.TopologyOblong, maze.TopologyMultilevel:
		lvl := ix.Level
		if lvl < 0 {
			// stairwells sit between the floors they join
			floor := -lvl - 1
			return float64(ix.Col) + (float64(floor)+0.5)*float64(g.Cols()+1), float64(ix.Row)
		}
		return float64(ix.Col) + float64(lvl)*float64(g.Cols()+1), float64(ix.Row)
	case maze.TopologyWeave, maze.TopologyPreweave:
		if c.Kind() == maze.KindUnder {
			return float64(ix.Col) + 0.25, float64(ix.Row) + 0.25
		}
		return float64(ix.Col), float64(ix.Row)
	default:
		return float64(ix.Col), float64(ix.Row)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
