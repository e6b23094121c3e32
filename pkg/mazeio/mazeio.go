// Package mazeio saves and loads generated mazes as JSON.
//
// The format stores the adjacency explicitly (every cell with its
// directional neighbor slots) rather than the construction recipe, so
// any topology round-trips: reloading replays the stored wiring
// through [maze.Builder] instead of re-deriving it. Weave grids with
// their re-pointed tunnel slots and multilevel grids with stairwells
// come back exactly as saved.
//
// The current version round-trips; long-term format stability is not
// promised.
package mazeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mazekit/mazekit/pkg/maze"
)

// Version is written into every document.
const Version = 1

var kindToString = map[maze.CellKind]string{
	maze.KindUnder: "under",
	maze.KindStair: "stair",
}

var kindFromString = map[string]maze.CellKind{
	"under": maze.KindUnder,
	"stair": maze.KindStair,
}

type document struct {
	Version  int         `json:"version"`
	Topology string      `json:"topology"`
	Rows     int         `json:"rows"`
	Cols     int         `json:"cols"`
	Levels   int         `json:"levels,omitempty"`
	Rings    []int       `json:"rings,omitempty"`
	Cells    []cellDoc   `json:"cells"`
	Links    [][2]string `json:"links"`
	Arcs     [][2]string `json:"arcs,omitempty"`
}

type cellDoc struct {
	ID        string        `json:"id"`
	Index     maze.Index    `json:"index"`
	Kind      string        `json:"kind,omitempty"`
	Neighbors []neighborDoc `json:"neighbors,omitempty"`
}

// neighborDoc is an ordered slot entry. Order matters: slot order
// drives iteration order, which keeps reloaded mazes deterministic
// under the same seed.
type neighborDoc struct {
	Dir string `json:"dir"`
	To  string `json:"to"`
}

// WriteJSON encodes a maze as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *maze.Grid, w io.Writer) error {
	cells := g.Cells()
	ord := make(map[*maze.Cell]int, len(cells))
	for i, c := range cells {
		ord[c] = i
	}

	doc := document{
		Version:  Version,
		Topology: g.Topology(),
		Rows:     g.Rows(),
		Cols:     g.Cols(),
		Levels:   g.Levels(),
		Cells:    make([]cellDoc, len(cells)),
	}
	if g.Topology() == maze.TopologyPolar {
		doc.Rings = make([]int, g.Rows())
		for i := range doc.Rings {
			doc.Rings[i] = g.RingSize(i)
		}
	}

	for i, c := range cells {
		cd := cellDoc{ID: c.Name(), Index: c.Index(), Kind: kindToString[c.Kind()]}
		for _, d := range c.Directions() {
			if nbr := c.Neighbor(d); nbr != nil {
				cd.Neighbors = append(cd.Neighbors, neighborDoc{Dir: string(d), To: nbr.Name()})
			}
		}
		doc.Cells[i] = cd

		for _, l := range c.Links() {
			if !l.Linked(c) {
				doc.Arcs = append(doc.Arcs, [2]string{c.Name(), l.Name()})
				continue
			}
			if ord[c] < ord[l] {
				doc.Links = append(doc.Links, [2]string{c.Name(), l.Name()})
			}
		}
	}
	if doc.Links == nil {
		doc.Links = [][2]string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a maze to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *maze.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a JSON maze from r.
//
// ReadJSON returns an error if the JSON is malformed, a cell has a
// duplicate ID, or a neighbor, link, or arc references an unknown ID.
// The returned grid is independent of r and safe to modify; ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*maze.Grid, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported maze document version %d", doc.Version)
	}

	b := maze.NewBuilder(doc.Topology, doc.Rows, doc.Cols, doc.Levels, doc.Rings)
	byID := make(map[string]*maze.Cell, len(doc.Cells))
	for _, cd := range doc.Cells {
		if _, dup := byID[cd.ID]; dup {
			return nil, fmt.Errorf("cell %s: duplicate id", cd.ID)
		}
		byID[cd.ID] = b.AddCell(cd.Index, kindFromString[cd.Kind])
	}
	for _, cd := range doc.Cells {
		c := byID[cd.ID]
		for _, n := range cd.Neighbors {
			nbr, ok := byID[n.To]
			if !ok {
				return nil, fmt.Errorf("cell %s: unknown neighbor %s", cd.ID, n.To)
			}
			b.SetNeighbor(c, maze.Direction(n.Dir), nbr)
		}
	}
	for _, l := range doc.Links {
		a, ok := byID[l[0]]
		c, ok2 := byID[l[1]]
		if !ok || !ok2 {
			return nil, fmt.Errorf("link %s-%s: unknown cell", l[0], l[1])
		}
		b.Link(a, c)
	}
	for _, arc := range doc.Arcs {
		a, ok := byID[arc[0]]
		c, ok2 := byID[arc[1]]
		if !ok || !ok2 {
			return nil, fmt.Errorf("arc %s->%s: unknown cell", arc[0], arc[1])
		}
		b.LinkOneWay(a, c)
	}

	return b.Grid(), nil
}

// ImportJSON reads a JSON file at path and returns the decoded maze.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes
// the file. Errors wrap the underlying cause with the file path for
// context.
func ImportJSON(path string) (*maze.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
