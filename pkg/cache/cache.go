// Package cache provides pluggable byte caches for the maze pipeline.
//
// Three backends implement the same [Cache] interface: a file cache
// for CLI usage, a redis cache for the server, and a null cache that
// disables caching entirely. Keys are produced by a [Keyer] so that
// every consumer (pipeline, server, CLI) derives identical keys for
// identical work: a maze key from the generation options, an artifact
// key from the maze hash plus the render options.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached stages. Generated mazes are deterministic in
// their options, so they keep for a long time; rendered artifacts are
// cheap to redo and large to keep.
const (
	TTLMaze     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque bytes under string keys with per-entry TTLs.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// A miss is (nil, false, nil); errors are reserved for backend
	// failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl stores the entry
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// MazeKeyOpts identify a generated maze. Two option sets that hash
// equal are guaranteed to produce byte-identical mazes, because
// generation is deterministic in topology, dimensions, algorithm,
// seed, and transforms.
type MazeKeyOpts struct {
	Topology  string  `json:"topology"`
	Rows      int     `json:"rows"`
	Cols      int     `json:"cols"`
	Levels    int     `json:"levels,omitempty"`
	Algorithm string  `json:"algorithm"`
	Seed      int64   `json:"seed"`
	Bias      float64 `json:"bias,omitempty"`
	Braid     float64 `json:"braid,omitempty"`
	Mask      string  `json:"mask,omitempty"`
}

// ArtifactKeyOpts identify a rendered artifact of a maze.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Style   string  `json:"style,omitempty"`
	Unicode bool    `json:"unicode,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// MazeKey generates a key for a generated maze document.
	MazeKey(opts MazeKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, keyed on
	// the hash of the maze document it renders.
	ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// MazeKey generates a key for a generated maze document.
func (k *DefaultKeyer) MazeKey(opts MazeKeyOpts) string {
	return hashKey("maze", opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", mazeHash, opts)
}
