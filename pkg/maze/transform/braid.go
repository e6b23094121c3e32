package transform

import (
	"math/rand"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
)

// Report summarizes a braiding pass over a maze's dead ends.
type Report struct {
	// Found is the number of dead ends before the pass.
	Found int
	// Requested is the number the bias asked to remove.
	Requested int
	// Removed is the number actually gone afterwards. Boundary and
	// mask geometry can leave some unreachable; straightening and
	// twisting sometimes remove two with one carve, so Removed can
	// land on either side of Requested.
	Removed int
	// Ratio is Removed over Found, or zero when nothing was found.
	Ratio float64
}

func report(g *maze.Grid, found, requested int) Report {
	r := Report{Found: found, Requested: requested}
	r.Removed = found - len(g.DeadEnds())
	if found > 0 {
		r.Ratio = float64(r.Removed) / float64(found)
	}
	return r
}

// Braid removes dead ends by linking each one to a random unlinked
// neighbor, preferring neighbors that are themselves dead ends so
// two disappear per carve. Bias is the fraction of dead ends to
// braid away; 1 leaves a maze with no dead ends at all (on grids
// with more than one cell). The result is no longer a tree: every
// braided dead end closes a circuit.
func Braid(g *maze.Grid, rng *rand.Rand, bias float64) (Report, error) {
	if err := errors.ValidateFraction("braid bias", bias); err != nil {
		return Report{}, err
	}
	ends := g.DeadEnds()
	found := len(ends)
	requested := int(float64(found) * bias)
	shuffle(rng, ends)

	for _, cell := range ends {
		if cell.Degree() != 1 {
			continue // already braided from the other side
		}
		if bias < 1 && rng.Float64() >= bias {
			continue
		}
		var unlinked, best []*maze.Cell
		for _, nbr := range g.Neighbors(cell) {
			if cell.Linked(nbr) {
				continue
			}
			unlinked = append(unlinked, nbr)
			if nbr.Degree() == 1 {
				best = append(best, nbr)
			}
		}
		if len(best) == 0 {
			best = unlinked
		}
		if len(best) == 0 {
			continue // isolated spur, nothing to join
		}
		nbr := best[rng.Intn(len(best))]
		if err := g.Link(cell, nbr); err != nil {
			return Report{}, err
		}
	}
	return report(g, found, requested), nil
}

// Sparsify removes dead ends by deleting them: each selected dead
// end is unlinked and dropped from the grid entirely, walls closing
// behind it. Repeated passes gnaw the maze down to its trunk.
// Row-sweep algorithms cannot run on a sparsified grid; sparsify
// after generation, not before.
func Sparsify(g *maze.Grid, rng *rand.Rand, bias float64) (Report, error) {
	if err := errors.ValidateFraction("sparsify bias", bias); err != nil {
		return Report{}, err
	}
	ends := g.DeadEnds()
	found := len(ends)
	requested := int(float64(found) * bias)

	// Removal can orphan new dead ends, so count deletions directly
	// instead of re-surveying.
	r := Report{Found: found, Requested: requested}
	for _, cell := range ends {
		if bias >= 1 || rng.Float64() < bias {
			g.RemoveCell(cell)
			r.Removed++
		}
	}
	if found > 0 {
		r.Ratio = float64(r.Removed) / float64(found)
	}
	return r, nil
}

// Straighten removes dead ends by extending the corridor straight
// through them: a dead end whose single passage enters from the
// south gets a new passage out the north, and so on. Dead ends
// against a boundary in the direction of travel stay as they are, so
// full removal is not guaranteed; the report says how close the pass
// came.
func Straighten(g *maze.Grid, rng *rand.Rand, bias float64) (Report, error) {
	if err := errors.ValidateFraction("straighten bias", bias); err != nil {
		return Report{}, err
	}
	ends := g.DeadEnds()
	found := len(ends)
	requested := int(float64(found) * bias)
	shuffle(rng, ends)

	done := 0
	for _, cell := range ends {
		if done >= requested {
			break
		}
		if cell.Degree() != 1 {
			done++ // a previous extension consumed it
			continue
		}
		for _, d := range cell.Directions() {
			opp := d.Opposite()
			in, out := cell.Neighbor(d), cell.Neighbor(opp)
			if in == nil || out == nil {
				continue
			}
			if cell.Linked(in) && !cell.Linked(out) {
				if err := g.Link(cell, out); err != nil {
					return Report{}, err
				}
				done++
			}
		}
	}
	return report(g, found, requested), nil
}

// TurnTable maps an incoming passage direction to the admissible
// outgoing turn directions for [Twist].
type TurnTable map[maze.Direction][]maze.Direction

// Turns returns the general turn table: passages may leave a dead
// end by either perpendicular direction.
func Turns() TurnTable {
	return TurnTable{
		maze.North: {maze.East, maze.West},
		maze.South: {maze.East, maze.West},
		maze.East:  {maze.North, maze.South},
		maze.West:  {maze.North, maze.South},
	}
}

// RightTurns returns the turn table restricted to right turns.
func RightTurns() TurnTable {
	return TurnTable{
		maze.North: {maze.West},
		maze.South: {maze.East},
		maze.East:  {maze.North},
		maze.West:  {maze.South},
	}
}

// LeftTurns returns the turn table restricted to left turns.
func LeftTurns() TurnTable {
	return TurnTable{
		maze.South: {maze.West},
		maze.North: {maze.East},
		maze.West:  {maze.North},
		maze.East:  {maze.South},
	}
}

// Twist removes dead ends by turning the corridor instead of
// extending it, using the given turn table (nil means [Turns]).
// Interior dead ends can always turn somewhere under the general
// table, so twisting tends to remove more than straightening; a
// restricted table behaves more like [Straighten] along the walls.
func Twist(g *maze.Grid, rng *rand.Rand, bias float64, turns TurnTable) (Report, error) {
	if err := errors.ValidateFraction("twist bias", bias); err != nil {
		return Report{}, err
	}
	if turns == nil {
		turns = Turns()
	}
	ends := g.DeadEnds()
	found := len(ends)
	requested := int(float64(found) * bias)
	shuffle(rng, ends)

	done := 0
	for _, cell := range ends {
		if done >= requested {
			break
		}
		if cell.Degree() != 1 {
			done++
			continue
		}
		for _, d := range cell.Directions() {
			bends, ok := turns[d]
			if !ok {
				continue
			}
			in := cell.Neighbor(d)
			if in == nil || !cell.Linked(in) {
				continue // not the incoming passage
			}
			var exits []*maze.Cell
			for _, bend := range bends {
				out := cell.Neighbor(bend)
				if out == nil {
					continue
				}
				if cell.Linked(out) {
					exits = nil
					break // already turning out
				}
				exits = append(exits, out)
			}
			if len(exits) == 0 {
				continue
			}
			out := exits[rng.Intn(len(exits))]
			if err := g.Link(cell, out); err != nil {
				return Report{}, err
			}
			done++
		}
	}
	return report(g, found, requested), nil
}

func shuffle(rng *rand.Rand, cells []*maze.Cell) {
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
}
