package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
	"github.com/mazekit/mazekit/pkg/pipeline"
	"github.com/mazekit/mazekit/pkg/render/text"
)

// viewCommand creates the view command, an interactive pager over a
// text render. Large mazes overflow a terminal; the pager scrolls.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		style string
		shade bool
	)

	cmd := &cobra.Command{
		Use:   "view [maze.json]",
		Short: "Page through a text render of a maze",
		Long: `Page through a text render of a maze.

Opens a full-screen pager over the unicode (or ascii) render.
With --shade, cell interiors are colored by distance from the
top-left cell, which makes the maze's structure visible at a glance.

Keys: up/down/j/k scroll, pgup/pgdn page, g/G jump to top/bottom, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(args[0], style, shade)
		},
	}

	cmd.Flags().StringVar(&style, "style", pipeline.StyleUnicode, "text style: unicode (default), ascii")
	cmd.Flags().BoolVar(&shade, "shade", false, "shade cells by distance from the first cell")

	return cmd
}

func (c *CLI) runView(input, style string, shade bool) error {
	if err := pipeline.ValidateStyle(style); err != nil {
		return err
	}
	g, err := mazeio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load maze %s: %w", input, err)
	}

	opts := text.Options{Unicode: style == pipeline.StyleUnicode}
	if shade {
		cells := g.Cells()
		if len(cells) > 0 {
			opts.Shade = maze.DistancesFrom(cells[0])
		}
	}

	rendered, err := text.Render(g, opts)
	if err != nil {
		return err
	}

	model := newPagerModel(input, rendered)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// pagerModel is the bubbletea model for the view pager. It keeps the
// rendered lines immutable and scrolls a window over them.
type pagerModel struct {
	title  string
	lines  []string
	offset int
	height int
	width  int
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{
		title:  title,
		lines:  strings.Split(strings.TrimRight(content, "\n"), "\n"),
		height: 24,
		width:  80,
	}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

// pageSize is the scroll window height minus the header and footer.
func (m pagerModel) pageSize() int {
	size := m.height - 3
	if size < 1 {
		size = 1
	}
	return size
}

func (m pagerModel) maxOffset() int {
	max := len(m.lines) - m.pageSize()
	if max < 0 {
		max = 0
	}
	return max
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		case "pgup", "b":
			m.offset -= m.pageSize()
			if m.offset < 0 {
				m.offset = 0
			}
		case "pgdown", "f", " ":
			m.offset += m.pageSize()
			if m.offset > m.maxOffset() {
				m.offset = m.maxOffset()
			}
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		if m.offset > m.maxOffset() {
			m.offset = m.maxOffset()
		}
	}
	return m, nil
}

func (m pagerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")

	end := m.offset + m.pageSize()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.lines[i])
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d-%d/%d]  ↑/↓ scroll  q quit", m.offset+1, end, len(m.lines))))
	return b.String()
}
