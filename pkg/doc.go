// Package pkg provides the core libraries for mazekit maze generation.
//
// # Overview
//
// The pkg directory is organized around the generate → render pipeline:
//
//  1. [maze] - Domain logic (grid topologies, carving algorithms, transforms, analysis)
//  2. [render] - Text and graphviz renderers
//  3. [mazeio] - JSON maze documents
//  4. [pipeline] - Orchestration (build → generate → render) with caching
//  5. [cache] / [archive] - Result cache and named maze storage
//  6. [server] - The HTTP API surface
//
// # Architecture
//
// The typical data flow through mazekit:
//
//	Options (topology, algorithm, seed)
//	         ↓
//	    [maze] package (build grid + carve passages)
//	         ↓
//	    [render/text] or [render/dot] (draw)
//	         ↓
//	    txt/dot/svg/png/pdf/json output
//
// # Quick Start
//
// Generate and render a maze through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Rows: 16, Cols: 16,
//	    Algorithm: "wilson", Seed: 7,
//	    Formats: []string{"svg"},
//	})
//
// Or work with the grid directly:
//
//	g, _ := maze.NewRectangular(16, 16)
//	rng := rand.New(rand.NewSource(7))
//	_ = algo.Wilson(g, rng)
//	fmt.Println(maze.TakeCensus(g))
//
// # Caching
//
// The pipeline caches at two levels: generated mazes keyed by their
// options, rendered artifacts keyed by the maze document's hash plus
// the render options. The [cache] package provides file, null, and
// redis backends behind one interface.
//
// [maze]: github.com/mazekit/mazekit/pkg/maze
// [render]: github.com/mazekit/mazekit/pkg/render
// [mazeio]: github.com/mazekit/mazekit/pkg/mazeio
// [pipeline]: github.com/mazekit/mazekit/pkg/pipeline
// [cache]: github.com/mazekit/mazekit/pkg/cache
// [archive]: github.com/mazekit/mazekit/pkg/archive
// [server]: github.com/mazekit/mazekit/pkg/server
package pkg
