package maze

import (
	"bufio"
	"io"
	"strings"

	"github.com/mazekit/mazekit/pkg/errors"
)

// Mask is an include bitmap over a rows×cols rectangular grid.
// Disabled cells do not exist on the masked grid: they are never
// enumerated and no enabled cell lists them as a neighbor.
type Mask struct {
	rows, cols int
	off        map[Index]bool
}

// NewMask creates an all-enabled mask of the given dimensions.
func NewMask(rows, cols int) (*Mask, error) {
	if err := errors.ValidateDimensions(rows, cols, 0); err != nil {
		return nil, err
	}
	return &Mask{rows: rows, cols: cols, off: make(map[Index]bool)}, nil
}

// Disable excludes the cell at (row, col).
func (m *Mask) Disable(row, col int) { m.off[Index{Row: row, Col: col}] = true }

// Enable re-includes the cell at (row, col).
func (m *Mask) Enable(row, col int) { delete(m.off, Index{Row: row, Col: col}) }

// Enabled reports whether (row, col) is included.
func (m *Mask) Enabled(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols &&
		!m.off[Index{Row: row, Col: col}]
}

// Rows returns the mask height.
func (m *Mask) Rows() int { return m.rows }

// Cols returns the mask width.
func (m *Mask) Cols() int { return m.cols }

// ReadMask parses a textual mask. Each line is one row, read top-down
// (the last line is row 0, matching the grid's bottom-up row order);
// an 'x' or 'X' disables the cell, any other character keeps it.
// Lines shorter than the longest line are padded with enabled cells.
func ReadMask(r io.Reader) (*Mask, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMask, err, "read mask")
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMask, "mask is empty")
	}
	cols := 0
	for _, l := range lines {
		if len(l) > cols {
			cols = len(l)
		}
	}
	if cols == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMask, "mask has no columns")
	}
	m, err := NewMask(len(lines), cols)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		row := len(lines) - 1 - i
		for j, ch := range line {
			if ch == 'x' || ch == 'X' {
				m.Disable(row, j)
			}
		}
	}
	return m, nil
}

// NewMasked builds a rectangular grid restricted to the cells the
// mask enables. At least one cell must survive. The enabled region
// may be disconnected; algorithms that require a connected grid
// detect that through [Grid.Connected] before generation.
func NewMasked(mask *Mask) (*Grid, error) {
	if mask == nil {
		return nil, errors.New(errors.ErrCodeInvalidMask, "mask is required")
	}
	g := newGrid(TopologyMasked, mask.rows, mask.cols, 0)
	for i := 0; i < mask.rows; i++ {
		for j := 0; j < mask.cols; j++ {
			if mask.Enabled(i, j) {
				g.addCell(Index{Row: i, Col: j}, KindCell)
			}
		}
	}
	if len(g.cells) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMask, "mask disables every cell")
	}
	for _, c := range g.cells {
		ix := c.Index()
		set := func(d Direction, row, col int) {
			if n := g.byIndex[Index{Row: row, Col: col}]; n != nil {
				c.setNeighbor(d, n)
			}
		}
		set(North, ix.Row+1, ix.Col)
		set(South, ix.Row-1, ix.Col)
		set(East, ix.Row, ix.Col+1)
		set(West, ix.Row, ix.Col-1)
	}
	return g, nil
}
