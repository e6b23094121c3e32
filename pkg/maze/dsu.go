package maze

import "github.com/spakin/disjoint"

// DisjointSet tracks a partition of a grid's cells into mergeable
// components. Kruskal-style and Borůvka-style algorithms use it to
// decide whether carving an edge would close a circuit. Union by rank
// and path compression come from the underlying disjoint-set forest.
type DisjointSet struct {
	elems map[*Cell]*disjoint.Element
	count int
}

// NewDisjointSet places every cell of the grid in its own singleton
// set.
func NewDisjointSet(g *Grid) *DisjointSet {
	ds := &DisjointSet{
		elems: make(map[*Cell]*disjoint.Element, g.Size()),
		count: g.Size(),
	}
	for _, c := range g.Cells() {
		ds.elems[c] = disjoint.NewElement()
	}
	return ds
}

// Add registers a cell created after construction (a weave undercell)
// as a fresh singleton and returns false if it was already present.
func (ds *DisjointSet) Add(c *Cell) bool {
	if _, ok := ds.elems[c]; ok {
		return false
	}
	ds.elems[c] = disjoint.NewElement()
	ds.count++
	return true
}

// Same reports whether a and b have been transitively unioned.
func (ds *DisjointSet) Same(a, b *Cell) bool {
	ea, eb := ds.elems[a], ds.elems[b]
	if ea == nil || eb == nil {
		return false
	}
	return ea.Find() == eb.Find()
}

// Union merges the sets containing a and b. It reports whether a
// merge happened; false means the cells were already in one set.
func (ds *DisjointSet) Union(a, b *Cell) bool {
	ea, eb := ds.elems[a], ds.elems[b]
	if ea == nil {
		ea = disjoint.NewElement()
		ds.elems[a] = ea
		ds.count++
	}
	if eb == nil {
		eb = disjoint.NewElement()
		ds.elems[b] = eb
		ds.count++
	}
	if ea.Find() == eb.Find() {
		return false
	}
	disjoint.Union(ea, eb)
	ds.count--
	return true
}

// Find returns the representative element of the set containing c,
// or nil for an unregistered cell. The representative is stable
// between unions, which makes it usable as a component key.
func (ds *DisjointSet) Find(c *Cell) *disjoint.Element {
	e := ds.elems[c]
	if e == nil {
		return nil
	}
	return e.Find()
}

// Count returns the current number of disjoint sets.
func (ds *DisjointSet) Count() int { return ds.count }
