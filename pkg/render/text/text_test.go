package text

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

func mustLink(t *testing.T, g *maze.Grid, a, b *maze.Cell) {
	t.Helper()
	if err := g.Link(a, b); err != nil {
		t.Fatal(err)
	}
}

// twoByTwo carves the single corridor (1,1)-(1,0)-(0,0)-(0,1); the
// fixed-output tests draw it.
func twoByTwo(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.NewRectangular(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	mustLink(t, g, g.At(1, 0), g.At(1, 1))
	mustLink(t, g, g.At(1, 0), g.At(0, 0))
	mustLink(t, g, g.At(0, 0), g.At(0, 1))
	return g
}

func TestRenderASCII(t *testing.T) {
	got, err := Render(twoByTwo(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"+---+---+",
		"|       |",
		"+   +---+",
		"|       |",
		"+---+---+",
		"",
	}, "\n")
	if got != want {
		t.Errorf("ascii render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderUnicode(t *testing.T) {
	got, err := Render(twoByTwo(t), Options{Unicode: true})
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"┌───────┐",
		"│       │",
		"│   ╶───┤",
		"│       │",
		"└───────┘",
		"",
	}, "\n")
	if got != want {
		t.Errorf("unicode render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMaskedHole(t *testing.T) {
	mask, err := maze.ReadMask(strings.NewReader("x..\n...\n"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := maze.NewMasked(mask)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Render(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	// The disabled cell sits at row 1, col 0: the top-left interior
	// and its outer walls vanish.
	if !strings.HasPrefix(lines[0], " ") {
		t.Errorf("top boundary %q extends over the masked hole", lines[0])
	}
	if !strings.HasPrefix(lines[1], " ") {
		t.Errorf("body line %q draws a wall beside the masked hole", lines[1])
	}
	if !strings.HasPrefix(lines[2], "+") {
		t.Errorf("boundary %q below the hole lost its wall", lines[2])
	}
}

func TestRenderCylinderSeam(t *testing.T) {
	g, err := maze.NewCylinder(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	mustLink(t, g, g.At(0, 2), g.At(0, 0))

	got, err := Render(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	bottom := lines[3]
	// A carved seam shows open at both line edges of its row.
	if !strings.HasPrefix(bottom, " ") || !strings.HasSuffix(bottom, " ") {
		t.Errorf("seam row %q should be open at both edges", bottom)
	}
	top := lines[1]
	if !strings.HasPrefix(top, "|") || !strings.HasSuffix(top, "|") {
		t.Errorf("unlinked seam row %q should be walled at both edges", top)
	}
}

func TestRenderWeaveTunnelGaps(t *testing.T) {
	g, err := maze.NewWeave(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	mustLink(t, g, g.At(1, 0), g.At(1, 1))
	mustLink(t, g, g.At(1, 1), g.At(1, 2))
	// Tunnel north-south under the middle platform.
	mustLink(t, g, g.At(0, 1), g.At(2, 1))

	got, err := Render(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "- -") != 2 {
		t.Errorf("render has %d tunnel gaps, want 2:\n%s", strings.Count(got, "- -"), got)
	}

	uni, err := Render(g, Options{Unicode: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(uni, "─ ─") != 2 {
		t.Errorf("unicode render has %d tunnel gaps, want 2:\n%s", strings.Count(uni, "─ ─"), uni)
	}
}

func TestRenderAnnotate(t *testing.T) {
	g := twoByTwo(t)
	d := maze.DistancesFrom(g.At(1, 1))
	got, err := Render(g, Options{Annotate: func(c *maze.Cell) rune {
		dist, ok := d.At(c)
		if !ok {
			return 0
		}
		return rune('0' + dist)
	}})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{" 0 ", " 1 ", " 2 ", " 3 "} {
		if !strings.Contains(got, want) {
			t.Errorf("render missing distance label %q:\n%s", want, got)
		}
	}
}

func TestRenderShadePlainPalette(t *testing.T) {
	// A palette of unstyled entries must leave the text unchanged
	// while still exercising the bucket arithmetic.
	g := twoByTwo(t)
	plain, err := Render(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	palette := []lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()}
	shaded, err := Render(g, Options{Shade: maze.DistancesFrom(g.At(1, 1)), Palette: palette})
	if err != nil {
		t.Fatal(err)
	}
	if shaded != plain {
		t.Errorf("plain palette changed the render:\n%s\nwant:\n%s", shaded, plain)
	}
}

func TestRenderUnsupportedTopology(t *testing.T) {
	g, err := maze.NewPolar(3, maze.PolarConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Render(g, Options{}); !errors.Is(err, errors.ErrCodeUnsupportedTopology) {
		t.Errorf("Render(polar) error = %v, want UNSUPPORTED_TOPOLOGY", err)
	}
}
