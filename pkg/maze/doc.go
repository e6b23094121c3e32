// Package maze provides the grid and cell model maze generation runs
// on: an ordered collection of cells, a topology wiring their
// potential neighbor slots, and the link state that becomes the maze.
//
// # Model
//
// A [Cell] knows its potential neighbors by direction and the subset
// it is linked to by passages. A [Grid] owns the cells and enforces
// the topology: [Grid.Link] refuses pairs that are not potential
// neighbors, links are symmetric, and every link or unlink drops the
// cached component census. A maze is not a separate type — it is the
// grid's link state after a generation algorithm (package
// maze/algo) has run.
//
// # Topologies
//
// One Grid type serves every topology; the builders inject the
// adjacency instead of subclassing:
//
//   - [NewRectangular], [NewCylinder], [NewMoebius] — rectangular
//     family, with east/west seam gluing (plain or twisted)
//   - [NewPolar] — theta grids with pole cells and variable ring sizes
//   - [NewDelta], [NewSigma], [NewUpsilon] — triangle, hexagon, and
//     octagon-square tilings
//   - [NewOblong], [NewMultilevel] — three-dimensional and stacked
//     grids
//   - [NewMasked] — a rectangular grid restricted to a bitmap
//   - [NewWeave], [NewPreweave] — grids whose passages may tunnel
//     under one another
//
// # Reproducibility
//
// Nothing in this package touches global randomness. Every randomized
// operation takes a *rand.Rand; the same seed threaded through grid
// construction and generation reproduces the same maze.
package maze
