package maze

// Census summarizes a grid's link structure for the spanning-tree
// characteristic v − e − k = 0 and for texture statistics.
type Census struct {
	Cells      int // v
	Passages   int // e
	Components int // k
	DeadEnds   int // degree-1 cells
	Isolated   int // degree-0 cells
}

// Characteristic returns v − e − k; zero means the link state is a
// spanning forest with one tree per component, and negative values
// mean circuits.
func (c Census) Characteristic() int { return c.Cells - c.Passages - c.Components }

// TakeCensus computes the grid's current census.
func TakeCensus(g *Grid) Census {
	c := Census{
		Cells:      g.Size(),
		Passages:   g.LinkCount(),
		Components: g.Components(),
	}
	for _, cell := range g.cells {
		switch cell.Degree() {
		case 0:
			c.Isolated++
		case 1:
			c.DeadEnds++
		}
	}
	return c
}

// DegreeCounts returns a histogram of passage degrees: how many cells
// have zero passages (isolated), one (dead ends), and so on.
func DegreeCounts(g *Grid) map[int]int {
	counts := make(map[int]int)
	for _, c := range g.cells {
		counts[c.Degree()]++
	}
	return counts
}

// EulerCounts returns the directed passage, wall, and neighbor-slot
// counts: each undirected passage, wall, or adjacency contributes
// twice, once per endpoint. Slots with no neighbor (grid boundary)
// are not counted.
func EulerCounts(g *Grid) (passages, walls, neighbors int) {
	for _, c := range g.cells {
		n := len(c.Neighbors())
		p := c.Degree()
		neighbors += n
		passages += p
		walls += n - p
	}
	return passages, walls, neighbors
}
