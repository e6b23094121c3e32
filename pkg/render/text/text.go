// Package text renders rectangular-family mazes as terminal text.
//
// The ASCII renderer draws the familiar +---+ walls; the unicode
// renderer resolves every wall junction to the matching box-drawing
// glyph. Weave under-passages are drawn with gaps in the walls they
// tunnel beneath. Optional lipgloss styling colors the walls and
// shades cell interiors by distance from a root, which makes
// longest-path texture maps readable at a glance.
package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// Options configures a text render.
type Options struct {
	// Unicode switches from +---+ walls to box-drawing glyphs.
	Unicode bool

	// Walls styles every wall glyph. The zero style renders plain.
	Walls lipgloss.Style

	// Shade fills cell interiors with a distance gradient when set.
	Shade *maze.Distances

	// Palette holds the gradient buckets for Shade, nearest first.
	// Nil means [DefaultPalette].
	Palette []lipgloss.Style

	// Annotate supplies a glyph for a cell's interior, drawn centered.
	// Return zero for an empty interior.
	Annotate func(*maze.Cell) rune
}

// DefaultPalette is an 8-step grey ramp for distance shading.
func DefaultPalette() []lipgloss.Style {
	ramp := []string{"236", "238", "240", "242", "244", "246", "248", "250"}
	styles := make([]lipgloss.Style, len(ramp))
	for i, c := range ramp {
		styles[i] = lipgloss.NewStyle().Background(lipgloss.Color(c))
	}
	return styles
}

// Render draws the maze as terminal text. Rectangular, cylinder,
// masked, and weave grids are supported; other topologies have no flat
// wall layout and report unsupported_topology.
func Render(g *maze.Grid, opts Options) (string, error) {
	switch g.Topology() {
	case maze.TopologyRectangular, maze.TopologyCylinder, maze.TopologyMasked,
		maze.TopologyWeave, maze.TopologyPreweave:
	default:
		return "", errors.New(errors.ErrCodeUnsupportedTopology,
			"text rendering needs a flat wall layout, not a %s grid", g.Topology())
	}

	c := canvas{g: g, opts: opts}
	if opts.Shade != nil {
		c.palette = opts.Palette
		if c.palette == nil {
			c.palette = DefaultPalette()
		}
		_, c.maxDist = opts.Shade.Furthest()
	}

	var b strings.Builder
	b.WriteString(c.wallLine(g.Rows()))
	for r := g.Rows() - 1; r >= 0; r-- {
		b.WriteString(c.bodyLine(r))
		b.WriteString(c.wallLine(r))
	}
	return b.String(), nil
}

type canvas struct {
	g       *maze.Grid
	opts    Options
	palette []lipgloss.Style
	maxDist int
}

func (c *canvas) at(row, col int) *maze.Cell {
	return c.g.At(row, col)
}

// under returns the undercell beneath (row, col), if any.
func (c *canvas) under(row, col int) *maze.Cell {
	return c.g.CellAt(maze.Index{Row: row, Col: col, Level: 1})
}

// hSeg reports the horizontal wall segment below row r at column col:
// present when a wall separates (r, col) from (r-1, col), gapped when a
// tunnel passes under it.
func (c *canvas) hSeg(r, col int) (present, gap bool) {
	upper, lower := c.at(r, col), c.at(r-1, col)
	if upper == nil && lower == nil {
		return false, false
	}
	if upper != nil && lower != nil && upper.Linked(lower) {
		return false, false
	}
	if u := c.under(r, col); u != nil && lower != nil && u.Linked(lower) {
		return true, true
	}
	if u := c.under(r - 1, col); u != nil && upper != nil && u.Linked(upper) {
		return true, true
	}
	return true, false
}

// vSeg reports the vertical wall segment at row r between columns
// cb-1 and cb. Cylinder seams resolve through grid normalization, so
// a carved seam shows open at both line edges.
func (c *canvas) vSeg(r, cb int) (present, gap bool) {
	left, right := c.at(r, cb-1), c.at(r, cb)
	if left == nil && right == nil {
		return false, false
	}
	if left != nil && right != nil && left.Linked(right) {
		return false, false
	}
	if u := c.under(r, cb-1); u != nil && right != nil && u.Linked(right) {
		return true, true
	}
	if u := c.under(r, cb); u != nil && left != nil && u.Linked(left) {
		return true, true
	}
	return true, false
}

// junctions maps the NESW wall-presence bitmask to a box-drawing rune.
var junctions = [16]rune{
	' ', '╵', '╶', '└', '╷', '│', '┌', '├',
	'╴', '┘', '─', '┴', '┐', '┤', '┬', '┼',
}

// vSegAt is vSeg with row bounds checking for the junction scan.
func (c *canvas) vSegAt(r, cb int) (bool, bool) {
	if r < 0 || r >= c.g.Rows() {
		return false, false
	}
	return c.vSeg(r, cb)
}

func (c *canvas) wall(s string) string {
	return c.opts.Walls.Render(s)
}

// wallLine draws the horizontal boundary below row r (r == Rows() is
// the top boundary).
func (c *canvas) wallLine(r int) string {
	var b strings.Builder
	for cb := 0; cb <= c.g.Cols(); cb++ {
		b.WriteString(c.wall(c.cornerGlyph(r, cb)))
		if cb == c.g.Cols() {
			break
		}
		present, gap := c.hSeg(r, cb)
		b.WriteString(c.wall(c.hGlyph(present, gap)))
	}
	b.WriteByte('\n')
	return b.String()
}

func (c *canvas) cornerGlyph(r, cb int) string {
	west := false
	if cb > 0 {
		west, _ = c.hSeg(r, cb-1)
	}
	east := false
	if cb < c.g.Cols() {
		east, _ = c.hSeg(r, cb)
	}
	north, _ := c.vSegAt(r, cb)
	south, _ := c.vSegAt(r-1, cb)

	if !c.opts.Unicode {
		if west || east || north || south {
			return "+"
		}
		return " "
	}
	mask := 0
	if north {
		mask |= 1
	}
	if east {
		mask |= 2
	}
	if south {
		mask |= 4
	}
	if west {
		mask |= 8
	}
	return string(junctions[mask])
}

func (c *canvas) hGlyph(present, gap bool) string {
	switch {
	case !present:
		return "   "
	case gap && c.opts.Unicode:
		return "─ ─"
	case gap:
		return "- -"
	case c.opts.Unicode:
		return "───"
	default:
		return "---"
	}
}

func (c *canvas) vGlyph(present, gap bool) string {
	switch {
	case !present:
		return " "
	case gap && c.opts.Unicode:
		return "┆"
	case gap:
		return ":"
	case c.opts.Unicode:
		return "│"
	default:
		return "|"
	}
}

// bodyLine draws row r's interiors and vertical walls.
func (c *canvas) bodyLine(r int) string {
	var b strings.Builder
	for cb := 0; cb <= c.g.Cols(); cb++ {
		present, gap := c.vSeg(r, cb)
		b.WriteString(c.wall(c.vGlyph(present, gap)))
		if cb == c.g.Cols() {
			break
		}
		b.WriteString(c.body(c.at(r, cb)))
	}
	b.WriteByte('\n')
	return b.String()
}

func (c *canvas) body(cell *maze.Cell) string {
	if cell == nil {
		return "   "
	}
	interior := "   "
	if c.opts.Annotate != nil {
		if g := c.opts.Annotate(cell); g != 0 {
			interior = " " + string(g) + " "
		}
	}
	if c.opts.Shade != nil {
		if d, ok := c.opts.Shade.At(cell); ok && c.maxDist >= 0 {
			bucket := 0
			if c.maxDist > 0 {
				bucket = d * len(c.palette) / (c.maxDist + 1)
			}
			return c.palette[bucket].Render(interior)
		}
	}
	return interior
}
