// Package render turns generated mazes into visual output.
//
// # Overview
//
// Two renderer families live in subpackages:
//
//   - [text]: plain ASCII and unicode box-drawing renders for the
//     terminal, with optional lipgloss wall styling and
//     distance-gradient cell shading
//   - [dot]: Graphviz DOT emission for any topology, rasterized to
//     SVG, PNG, or PDF via goccy/go-graphviz
//
// Both consume only the read-only side of [maze.Grid]: cell
// enumeration, neighbor queries, and link queries. Rendering never
// mutates a maze.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(dot.Graph(g, dot.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [text]: github.com/mazekit/mazekit/pkg/render/text
// [dot]: github.com/mazekit/mazekit/pkg/render/dot
// [maze.Grid]: github.com/mazekit/mazekit/pkg/maze
package render
