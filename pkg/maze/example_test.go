package maze_test

import (
	"fmt"
	"math/rand"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/maze/algo"
)

func ExampleGrid() {
	g, _ := maze.NewRectangular(2, 3)

	// Carve one passage along the bottom row.
	_ = g.Link(g.At(0, 0), g.At(0, 1))

	fmt.Println("cells:", g.Size())
	fmt.Println("passages:", g.LinkCount())
	fmt.Println("linked:", g.Linked(g.At(0, 0), g.At(0, 1)))
	// Output:
	// cells: 6
	// passages: 1
	// linked: true
}

func ExampleTakeCensus() {
	g, _ := maze.NewRectangular(5, 5)

	a, _ := algo.Lookup("dfs")
	_ = a.Run(g, rand.New(rand.NewSource(1)))

	c := maze.TakeCensus(g)
	fmt.Println("cells:", c.Cells)
	fmt.Println("passages:", c.Passages)
	fmt.Println("components:", c.Components)
	fmt.Println("characteristic:", c.Characteristic())
	// Output:
	// cells: 25
	// passages: 24
	// components: 1
	// characteristic: 0
}
