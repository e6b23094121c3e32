package maze

// Distances holds the passage distance from a root cell to every cell
// reachable from it.
type Distances struct {
	Root *Cell
	dist map[*Cell]int
}

// DistancesFrom computes unit-weight passage distances from root with
// a breadth-first frontier sweep. Cells in other components are
// absent from the result.
func DistancesFrom(root *Cell) *Distances {
	d := &Distances{Root: root, dist: map[*Cell]int{root: 0}}
	var frontier Queue[*Cell]
	frontier.Push(root)
	for {
		c, ok := frontier.Pop()
		if !ok {
			break
		}
		for _, l := range c.Links() {
			if _, seen := d.dist[l]; !seen {
				d.dist[l] = d.dist[c] + 1
				frontier.Push(l)
			}
		}
	}
	return d
}

// At returns the distance to c; ok is false when c is unreachable
// from the root.
func (d *Distances) At(c *Cell) (int, bool) {
	v, ok := d.dist[c]
	return v, ok
}

// Reachable returns the number of cells reachable from the root,
// including the root itself.
func (d *Distances) Reachable() int { return len(d.dist) }

// Furthest returns a cell at maximum distance from the root and that
// distance. Ties resolve to the first such cell in link-discovery
// order.
func (d *Distances) Furthest() (*Cell, int) {
	best, bestDist := d.Root, 0
	for c, v := range d.dist {
		if v > bestDist || (v == bestDist && best != d.Root && c.ord < best.ord) {
			best, bestDist = c, v
		}
	}
	return best, bestDist
}

// PathTo descends from goal back to the root, at each step moving to
// a linked neighbor one unit closer. It returns the path from root to
// goal inclusive, or nil when goal is unreachable.
func (d *Distances) PathTo(goal *Cell) []*Cell {
	if _, ok := d.dist[goal]; !ok {
		return nil
	}
	path := []*Cell{goal}
	for c := goal; c != d.Root; {
		var next *Cell
		for _, l := range c.Links() {
			if v, ok := d.dist[l]; ok && v == d.dist[c]-1 {
				next = l
				break
			}
		}
		if next == nil {
			return nil // broken metric, cannot happen on live link state
		}
		path = append(path, next)
		c = next
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// LongestPath finds a diameter path of the maze with the double-sweep
// method: the furthest cell from an arbitrary start is one endpoint
// of a longest path, and the furthest cell from that endpoint is the
// other. It returns the path and its length in passages. On a
// multi-component grid the path spans only start's component.
func LongestPath(g *Grid, start *Cell) ([]*Cell, int) {
	if start == nil {
		if g.Size() == 0 {
			return nil, 0
		}
		start = g.cells[0]
	}
	a, _ := DistancesFrom(start).Furthest()
	da := DistancesFrom(a)
	b, n := da.Furthest()
	return da.PathTo(b), n
}
