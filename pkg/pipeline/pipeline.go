// Package pipeline provides the core maze pipeline for mazekit.
//
// This package implements the complete build → generate → render
// pipeline shared by the CLI and the HTTP server. Centralizing it here
// keeps behavior and cache keys identical across entry points.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Generate: Build a grid of the requested topology and carve a
//     maze into it with the requested algorithm and seed.
//  2. Render: Produce output artifacts in various formats (text, DOT,
//     SVG, PNG, PDF, JSON).
//
// Generation is deterministic in its options, so the maze stage caches
// on the options themselves; the render stage caches on the hash of
// the serialized maze plus the render options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Topology:  "rectangular",
//	    Rows:      12,
//	    Cols:      12,
//	    Algorithm: "recursive-backtracker",
//	    Formats:   []string{"txt"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["txt"]))
//
// Run individual stages:
//
//	// Generate only
//	g, err := runner.Generate(ctx, opts)
//
//	// Render an existing maze
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mazekit/mazekit/pkg/cache"
	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/maze/algo"
)

const (
	// DefaultRows is the default grid height.
	DefaultRows = 12

	// DefaultCols is the default grid width.
	DefaultCols = 12

	// DefaultAlgorithm is the default generation algorithm.
	DefaultAlgorithm = "recursive-backtracker"

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultScale is the default PNG rasterization scale.
	DefaultScale = 2.0
)

// DefaultTopology is the default grid topology.
const DefaultTopology = maze.TopologyRectangular

// Format constants for output formats.
const (
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Style constants for text rendering.
const (
	StyleASCII   = "ascii"
	StyleUnicode = "unicode"
)

// ValidStyles is the set of supported text styles.
var ValidStyles = map[string]bool{
	StyleASCII:   true,
	StyleUnicode: true,
}

// ValidTopologies is the set of topologies the pipeline can build.
var ValidTopologies = map[string]bool{
	maze.TopologyRectangular: true,
	maze.TopologyCylinder:    true,
	maze.TopologyMoebius:     true,
	maze.TopologyPolar:       true,
	maze.TopologyDelta:       true,
	maze.TopologySigma:       true,
	maze.TopologyUpsilon:     true,
	maze.TopologyOblong:      true,
	maze.TopologyMultilevel:  true,
	maze.TopologyMasked:      true,
	maze.TopologyWeave:       true,
	maze.TopologyPreweave:    true,
}

// Options contains all configuration for the maze pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Topology  string `json:"topology,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	Cols      int    `json:"cols,omitempty"`
	Levels    int    `json:"levels,omitempty"`     // floors (multilevel) or levels (oblong)
	Mask      string `json:"mask,omitempty"`       // mask document text (masked topology)
	PoleCells int    `json:"pole_cells,omitempty"` // wedges at the pole (polar topology)

	// Generate options
	Algorithm string  `json:"algorithm,omitempty"`
	Seed      int64   `json:"seed,omitempty"`
	Bias      float64 `json:"bias,omitempty"`  // coin bias for the biased algorithm families
	Braid     float64 `json:"braid,omitempty"` // dead-end removal ratio after carving
	Refresh   bool    `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	ShowGrid bool     `json:"show_grid,omitempty"` // DOT: draw uncarved edges dashed
	Labels   bool     `json:"labels,omitempty"`    // DOT: coordinate labels in nodes
	Scale    float64  `json:"scale,omitempty"`     // PNG rasterization scale

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Maze is the generated grid.
	Maze *maze.Grid

	// MazeHash is the content hash of the serialized maze.
	MazeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells        int
	Passages     int
	DeadEnds     int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the maze came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: txt, dot, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a text style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid style: %q (must be one of: ascii, unicode)", style)
	}
	return nil
}

// ValidateTopology checks that a topology is one the pipeline can build.
func ValidateTopology(topology string) error {
	if !ValidTopologies[topology] {
		return errors.New(errors.ErrCodeInvalidTopology, "invalid topology: %q", topology)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks required fields for maze generation and
// applies generation defaults.
func (o *Options) ValidateForGenerate() error {
	if o.Topology == "" {
		o.Topology = DefaultTopology
	}
	if err := ValidateTopology(o.Topology); err != nil {
		return err
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if err := errors.ValidateDimensions(o.Rows, o.Cols, o.Levels); err != nil {
		return err
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	a, err := algo.Lookup(o.Algorithm)
	if err != nil {
		return err
	}
	// Canonicalize so aliases hit the same cache entries.
	o.Algorithm = a.Name

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if err := errors.ValidateBias(o.Bias); err != nil {
		return err
	}
	if err := errors.ValidateFraction("braid", o.Braid); err != nil {
		return err
	}
	if o.Topology == maze.TopologyMasked && strings.TrimSpace(o.Mask) == "" {
		return errors.New(errors.ErrCodeInvalidMask, "masked topology requires a mask")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Style == "" {
		o.Style = StyleUnicode
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// MazeKeyOpts returns cache key options for the generate stage.
func (o *Options) MazeKeyOpts() cache.MazeKeyOpts {
	return cache.MazeKeyOpts{
		Topology:  o.Topology,
		Rows:      o.Rows,
		Cols:      o.Cols,
		Levels:    o.Levels,
		Algorithm: o.Algorithm,
		Seed:      o.Seed,
		Bias:      o.Bias,
		Braid:     o.Braid,
		Mask:      o.Mask,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Unicode: o.Style == StyleUnicode,
		Scale:   o.Scale,
	}
}
