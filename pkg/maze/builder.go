package maze

// Builder assembles a grid cell by cell from an external description.
// The serialization bridge uses it to reconstruct saved mazes of any
// topology by replaying the stored adjacency instead of re-deriving
// it, and custom topologies can use it directly: the neighbor wiring
// supplied through the builder is the injected topology strategy.
//
// The builder performs no topology validation; callers own the
// invariant that the wired adjacency is simple and symmetric.
type Builder struct {
	g *Grid
}

// NewBuilder starts a grid with the given topology label and
// dimensions. The label controls capability checks downstream, so
// reconstructed grids keep the behavior of their original topology.
func NewBuilder(topology string, rows, cols, levels int, rings []int) *Builder {
	g := newGrid(topology, rows, cols, levels)
	g.rings = rings
	switch topology {
	case TopologyWeave:
		g.weave = true
		g.tunnels = true
	case TopologyPreweave:
		g.tunnels = true
	case TopologyMoebius:
		g.oriented = true
	}
	return &Builder{g: g}
}

// AddCell creates and registers a cell. Cells enumerate in the order
// they are added.
func (b *Builder) AddCell(ix Index, kind CellKind) *Cell {
	return b.g.addCell(ix, kind)
}

// SetNeighbor wires a one-directional neighbor slot. Call it once per
// direction per cell; symmetric slots are the caller's concern
// because serialized weave grids carry asymmetric re-pointed slots.
func (b *Builder) SetNeighbor(c *Cell, d Direction, nbr *Cell) {
	c.setNeighbor(d, nbr)
}

// Link records a passage without topology checks.
func (b *Builder) Link(a, c *Cell) {
	b.g.rawLink(a, c)
}

// LinkOneWay records a directed passage without topology checks, for
// replaying serialized one-way arcs.
func (b *Builder) LinkOneWay(a, c *Cell) {
	if a.Linked(c) {
		return
	}
	a.addLink(c)
	b.g.comp = nil
}

// Grid returns the assembled grid.
func (b *Builder) Grid() *Grid { return b.g }
