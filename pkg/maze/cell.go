package maze

import "fmt"

// Direction names a potential neighbor slot on a cell. Topologies use
// whichever vocabulary fits their geometry: compass points for
// rectangular-family grids, ring directions for polar grids, and
// vertical directions for multilevel and 3-D grids. Polar grids also
// mint numbered outward directions (outward0, outward1, ...) because a
// ring cell can fan out to several cells in the next ring.
type Direction string

// Directions shared by the built-in topologies.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"

	NorthEast Direction = "northeast"
	NorthWest Direction = "northwest"
	SouthEast Direction = "southeast"
	SouthWest Direction = "southwest"

	Up   Direction = "up"
	Down Direction = "down"

	Inward           Direction = "inward"
	Clockwise        Direction = "cw"
	CounterClockwise Direction = "ccw"

	// Sigma (hexagonal) grids use a forward/backward vocabulary since
	// hex columns do not line up with compass points.
	Forward      Direction = "f"
	Backward     Direction = "b"
	ForwardLeft  Direction = "fl"
	ForwardRight Direction = "fr"
	BackLeft     Direction = "bl"
	BackRight    Direction = "br"
)

// Outward returns the k-th outward direction used by polar grids.
func Outward(k int) Direction {
	return Direction(fmt.Sprintf("outward%d", k))
}

// opposites maps each direction to its reverse where one exists.
var opposites = map[Direction]Direction{
	North:     South,
	South:     North,
	East:      West,
	West:      East,
	NorthEast: SouthWest,
	SouthWest: NorthEast,
	NorthWest: SouthEast,
	SouthEast: NorthWest,
	Up:        Down,
	Down:      Up,

	Clockwise:        CounterClockwise,
	CounterClockwise: Clockwise,

	Forward:      Backward,
	Backward:     Forward,
	ForwardLeft:  BackRight,
	BackRight:    ForwardLeft,
	ForwardRight: BackLeft,
	BackLeft:     ForwardRight,
}

// Opposite returns the reverse direction, or "" when the direction has
// no fixed reverse (polar outward slots reverse to Inward but carry a
// numeric suffix, so they are resolved by the topology instead).
func (d Direction) Opposite() Direction {
	return opposites[d]
}

// CellKind distinguishes ordinary cells from the auxiliary cells some
// topologies create.
type CellKind int

const (
	// KindCell is an ordinary grid cell.
	KindCell CellKind = iota

	// KindUnder is a weave undercell carrying the lower half of a
	// tunnel crossing.
	KindUnder

	// KindStair is a stairwell cell joining two levels of a
	// multilevel grid.
	KindStair
)

// Index locates a cell within its grid. Row and Col address the planar
// position; Level is 0 for flat grids, the level number for 3-D and
// multilevel grids, and 1 for weave undercells beneath a level-0 cell.
type Index struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Level int `json:"level,omitempty"`
}

// String renders the index as a coordinate tuple.
func (ix Index) String() string {
	if ix.Level != 0 {
		return fmt.Sprintf("(%d,%d,%d)", ix.Row, ix.Col, ix.Level)
	}
	return fmt.Sprintf("(%d,%d)", ix.Row, ix.Col)
}

// Cell is the atomic unit of a grid: it knows its potential neighbors
// by direction and which of them it is currently linked to by a
// passage. Cells are created and wired by the topology builders; the
// zero value is not usable.
//
// Slot and link order is insertion order, which keeps every iteration
// over a cell deterministic for a fixed seed.
type Cell struct {
	index Index
	kind  CellKind
	ord   int // position in grid iteration order

	dirs []Direction
	nbrs map[Direction]*Cell

	links []*Cell
}

func newCell(ix Index, kind CellKind) *Cell {
	return &Cell{
		index: ix,
		kind:  kind,
		nbrs:  make(map[Direction]*Cell),
	}
}

// Index returns the cell's grid coordinate.
func (c *Cell) Index() Index { return c.index }

// Kind reports whether this is an ordinary, undercell, or stairwell cell.
func (c *Cell) Kind() CellKind { return c.kind }

// Name returns a stable identifier usable as a graph node name.
func (c *Cell) Name() string {
	switch c.kind {
	case KindUnder:
		return fmt.Sprintf("u%dx%d", c.index.Row, c.index.Col)
	case KindStair:
		return fmt.Sprintf("s%dx%dx%d", c.index.Row, c.index.Col, c.index.Level)
	}
	if c.index.Level != 0 {
		return fmt.Sprintf("c%dx%dx%d", c.index.Row, c.index.Col, c.index.Level)
	}
	return fmt.Sprintf("c%dx%d", c.index.Row, c.index.Col)
}

// setNeighbor wires a directional slot. Re-pointing an existing slot
// (weave tunneling) keeps the original slot order.
func (c *Cell) setNeighbor(d Direction, nbr *Cell) {
	if _, ok := c.nbrs[d]; !ok {
		c.dirs = append(c.dirs, d)
	}
	c.nbrs[d] = nbr
}

// clearNeighbor removes a directional slot entirely.
func (c *Cell) clearNeighbor(d Direction) {
	if _, ok := c.nbrs[d]; !ok {
		return
	}
	delete(c.nbrs, d)
	for i, dir := range c.dirs {
		if dir == d {
			c.dirs = append(c.dirs[:i], c.dirs[i+1:]...)
			break
		}
	}
}

// Directions returns the cell's neighbor slot names in insertion order.
func (c *Cell) Directions() []Direction {
	out := make([]Direction, len(c.dirs))
	copy(out, c.dirs)
	return out
}

// Neighbor returns the cell in the given direction, or nil when the
// slot is empty (grid boundary) or absent.
func (c *Cell) Neighbor(d Direction) *Cell {
	return c.nbrs[d]
}

// DirectionTo returns the slot name under which nbr appears, or ""
// when nbr is not a potential neighbor.
func (c *Cell) DirectionTo(nbr *Cell) Direction {
	for _, d := range c.dirs {
		if c.nbrs[d] == nbr {
			return d
		}
	}
	return ""
}

// Neighbors returns the cell's potential neighbors in slot order.
// Weave grids extend this set dynamically; use [Grid.Neighbors] when
// tunnel candidates matter.
func (c *Cell) Neighbors() []*Cell {
	out := make([]*Cell, 0, len(c.dirs))
	for _, d := range c.dirs {
		if nbr := c.nbrs[d]; nbr != nil {
			out = append(out, nbr)
		}
	}
	return out
}

// Links returns the cells this cell has a passage to, in carve order.
func (c *Cell) Links() []*Cell {
	out := make([]*Cell, len(c.links))
	copy(out, c.links)
	return out
}

// Linked reports whether this cell has a passage to other.
// Linked(nil) is false.
func (c *Cell) Linked(other *Cell) bool {
	if other == nil {
		return false
	}
	for _, l := range c.links {
		if l == other {
			return true
		}
	}
	return false
}

// LinkedTo reports whether the cell has a passage in the given
// direction. A missing neighbor counts as unlinked.
func (c *Cell) LinkedTo(d Direction) bool {
	return c.Linked(c.nbrs[d])
}

// Degree returns the number of passages leaving the cell.
func (c *Cell) Degree() int { return len(c.links) }

func (c *Cell) addLink(other *Cell) {
	if !c.Linked(other) {
		c.links = append(c.links, other)
	}
}

func (c *Cell) removeLink(other *Cell) {
	for i, l := range c.links {
		if l == other {
			c.links = append(c.links[:i], c.links[i+1:]...)
			return
		}
	}
}
