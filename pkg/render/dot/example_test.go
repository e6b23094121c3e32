package dot_test

import (
	"fmt"
	"strings"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/render/dot"
)

func ExampleGraph() {
	g, _ := maze.NewRectangular(1, 2)
	_ = g.Link(g.At(0, 0), g.At(0, 1))

	out := dot.Graph(g, dot.Options{})

	fmt.Println(strings.HasPrefix(out, "digraph G {"))
	fmt.Println(strings.Contains(out, `"c0x0" -> "c0x1";`))
	// Output:
	// true
	// true
}
