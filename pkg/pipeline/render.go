package pipeline

import (
	"bytes"
	"fmt"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
	"github.com/mazekit/mazekit/pkg/render/dot"
	"github.com/mazekit/mazekit/pkg/render/text"
)

// RenderMaze generates output artifacts in the requested formats.
// The graphical formats (dot, svg, png, pdf) share one DOT emission;
// text rendering is only available on flat wall layouts and fails with
// an unsupported-topology error elsewhere.
func RenderMaze(g *maze.Grid, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	// Emit DOT once for every format that consumes it.
	var dotGraph string
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
			dotGraph = dot.Graph(g, dot.Options{ShowGrid: opts.ShowGrid, Labels: opts.Labels})
		}
		if dotGraph != "" {
			break
		}
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			var s string
			s, err = text.Render(g, text.Options{Unicode: opts.Style == StyleUnicode})
			data = []byte(s)
		case FormatDOT:
			data = []byte(dotGraph)
		case FormatSVG:
			data, err = dot.RenderSVG(dotGraph)
		case FormatPNG:
			data, err = dot.RenderPNG(dotGraph, opts.Scale)
		case FormatPDF:
			data, err = dot.RenderPDF(dotGraph)
		case FormatJSON:
			var buf bytes.Buffer
			err = mazeio.WriteJSON(g, &buf)
			data = buf.Bytes()
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
