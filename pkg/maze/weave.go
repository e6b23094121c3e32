package maze

import "github.com/mazekit/mazekit/pkg/errors"

// NewWeave builds a rectangular grid whose cells can tunnel under a
// perpendicular straight-through passage. Tunnel candidates appear
// dynamically in [Grid.Neighbors]: a cell may reach the cell two
// steps away when the intervening cell already carries a
// perpendicular through passage. Linking to such a candidate creates
// an undercell beneath the platform and routes the new passage
// through it.
func NewWeave(rows, cols int) (*Grid, error) {
	g, err := NewRectangular(rows, cols)
	if err != nil {
		return nil, err
	}
	g.topology = TopologyWeave
	g.weave = true
	g.tunnels = true
	return g, nil
}

// NewPreweave builds a weave grid without dynamic tunnel candidates.
// Tunnels exist only where they are placed explicitly — via
// [Grid.TunnelUnder] or [Grid.AddLongTunnel] — before generation
// runs. Kruskal's algorithm is the generation family verified to
// respect such pre-carved links.
func NewPreweave(rows, cols int) (*Grid, error) {
	g, err := NewRectangular(rows, cols)
	if err != nil {
		return nil, err
	}
	g.topology = TopologyPreweave
	g.tunnels = true
	return g, nil
}

// Tunnels reports whether the grid admits undercell tunnels.
func (g *Grid) Tunnels() bool { return g.tunnels }

// HorizontalThru reports whether c carries an east-west through
// passage with no north-south branches. Such a cell is a platform a
// north-south tunnel can pass under.
func (g *Grid) HorizontalThru(c *Cell) bool {
	if c.Kind() == KindUnder {
		return c.Neighbor(East) != nil || c.Neighbor(West) != nil
	}
	return c.LinkedTo(East) && c.LinkedTo(West) && !c.LinkedTo(North) && !c.LinkedTo(South)
}

// VerticalThru reports whether c carries a north-south through
// passage with no east-west branches.
func (g *Grid) VerticalThru(c *Cell) bool {
	if c.Kind() == KindUnder {
		return c.Neighbor(North) != nil || c.Neighbor(South) != nil
	}
	return c.LinkedTo(North) && c.LinkedTo(South) && !c.LinkedTo(East) && !c.LinkedTo(West)
}

// tunnelCandidates returns the cells reachable by tunneling under an
// adjacent platform: the neighbor two steps away in each direction
// whose intervening cell is a perpendicular through passage.
func (g *Grid) tunnelCandidates(c *Cell) []*Cell {
	var out []*Cell
	for _, d := range [...]Direction{North, South, East, West} {
		if r := g.tunnelRemote(c, d); r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (g *Grid) tunnelRemote(c *Cell, d Direction) *Cell {
	platform := c.Neighbor(d)
	if platform == nil || platform.Kind() != KindCell {
		return nil
	}
	remote := platform.Neighbor(d)
	if remote == nil {
		return nil
	}
	switch d {
	case North, South:
		if !g.HorizontalThru(platform) {
			return nil
		}
	case East, West:
		if !g.VerticalThru(platform) {
			return nil
		}
	default:
		return nil
	}
	return remote
}

// platformBetween finds the cell sitting between a and b when they
// are two steps apart along one axis, or nil.
func (g *Grid) platformBetween(a, b *Cell) *Cell {
	for _, d := range [...]Direction{North, South, East, West} {
		p := a.Neighbor(d)
		if p != nil && p == b.Neighbor(d.Opposite()) {
			return p
		}
	}
	return nil
}

// TunnelUnder carves a tunnel beneath the platform cell: a new
// undercell takes over the platform's perpendicular axis — its slots
// on that axis are re-pointed to the undercell, the platform loses
// them — and the undercell links to both sides. The platform keeps
// its own through passage; the two pass-through pairs never share a
// link. The axis is vertical when the platform's through passage is
// horizontal, and vice versa; a cell with no through passage needs
// explicit perpendicular neighbors on exactly one free axis
// (preweave crossings link the platform first).
func (g *Grid) TunnelUnder(platform *Cell) (*Cell, error) {
	if !g.tunnels {
		return nil, errors.New(errors.ErrCodeUnsupportedTopology, "grid %s does not support tunnels", g.topology)
	}
	ix := platform.Index()
	if under := g.byIndex[Index{Row: ix.Row, Col: ix.Col, Level: 1}]; under != nil {
		return nil, errors.New(errors.ErrCodeInvalidLink, "cell %s already has a tunnel", ix)
	}

	var axis [2]Direction
	switch {
	case g.HorizontalThru(platform):
		axis = [2]Direction{North, South}
	case g.VerticalThru(platform):
		axis = [2]Direction{East, West}
	default:
		return nil, errors.New(errors.ErrCodeInvalidLink, "cell %s has no through passage to tunnel under", ix)
	}

	a, b := platform.Neighbor(axis[0]), platform.Neighbor(axis[1])
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeInvalidLink, "cell %s is on the boundary of its tunnel axis", ix)
	}

	under := g.addCell(Index{Row: ix.Row, Col: ix.Col, Level: 1}, KindUnder)
	for i, side := range [...]*Cell{a, b} {
		d := axis[i]
		under.setNeighbor(d, side)
		side.setNeighbor(d.Opposite(), under)
		platform.clearNeighbor(d)
		g.rawLink(under, side)
	}
	return under, nil
}

// AddLongTunnel carves a straight tunnel of the given length starting
// from the cell after start in direction d. Every platform cell along
// the run gains an undercell; the undercells are chained to each
// other and to the entrance and exit cells. The passages are linked
// immediately, so only pre-link-aware algorithms (the Kruskal family)
// should run afterwards. It returns the undercells in order and the
// exit cell.
func (g *Grid) AddLongTunnel(start *Cell, d Direction, length int) ([]*Cell, *Cell, error) {
	if !g.tunnels {
		return nil, nil, errors.New(errors.ErrCodeUnsupportedTopology, "grid %s does not support tunnels", g.topology)
	}
	if length < 1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "tunnel length must be positive, got %d", length)
	}
	switch d {
	case North, South, East, West:
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "tunnel direction must be a compass point, got %q", d)
	}

	// Walk the run first so a failed precondition leaves the grid
	// untouched.
	platforms := make([]*Cell, 0, length)
	c := start
	for i := 0; i < length; i++ {
		p := c.Neighbor(d)
		if p == nil || p.Kind() != KindCell {
			return nil, nil, errors.New(errors.ErrCodeInvalidLink, "tunnel from %s runs off the grid after %d cells", start.Index(), i)
		}
		if p.Degree() > 0 {
			return nil, nil, errors.New(errors.ErrCodeInvalidLink, "tunnel platform %s already carries passages", p.Index())
		}
		ix := p.Index()
		if g.byIndex[Index{Row: ix.Row, Col: ix.Col, Level: 1}] != nil {
			return nil, nil, errors.New(errors.ErrCodeInvalidLink, "cell %s already has a tunnel", ix)
		}
		platforms = append(platforms, p)
		c = p
	}
	last := c.Neighbor(d)
	if last == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidLink, "tunnel from %s has no exit cell", start.Index())
	}

	// Chain: start — u1 — u2 — … — uN — last. Each platform loses
	// its slots along the tunnel axis to its undercell.
	rev := d.Opposite()
	undercells := make([]*Cell, 0, length)
	prev := start
	for _, p := range platforms {
		ix := p.Index()
		under := g.addCell(Index{Row: ix.Row, Col: ix.Col, Level: 1}, KindUnder)
		p.clearNeighbor(d)
		p.clearNeighbor(rev)
		under.setNeighbor(rev, prev)
		prev.setNeighbor(d, under)
		g.rawLink(under, prev)
		undercells = append(undercells, under)
		prev = under
	}
	prev.setNeighbor(d, last)
	last.setNeighbor(rev, prev)
	g.rawLink(prev, last)
	return undercells, last, nil
}
