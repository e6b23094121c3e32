// Package archive provides named storage for generated mazes.
//
// This package defines the Store interface for maze persistence, with
// implementations for different backends:
//   - file: JSON files under the user config directory, for the CLI
//   - mongo: a MongoDB collection, for server deployments
//
// # Architecture
//
// A Record couples a generated maze document with the options that
// produced it, under a stable UUID and a human-readable name. The
// Store interface supports:
//   - Put/Get/List/Delete operations
//   - Lookup by name as well as by ID
//
// # Usage
//
// Create a store:
//
//	// CLI
//	store, err := archive.NewFileStore("") // Uses ~/.config/mazekit/archive/
//
//	// Server
//	store, err := archive.NewMongoStore(ctx, "mongodb://localhost:27017", "mazekit")
//
// Save and retrieve mazes:
//
//	rec, err := archive.New("office-wall", opts, mazeJSON)
//	if err != nil {
//	    return err
//	}
//	if err := store.Put(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err = store.Get(ctx, rec.ID)
package archive

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

// Record is a stored maze: the serialized maze document plus the
// options that produced it.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Options   json.RawMessage `json:"options,omitempty"`
	Maze      json.RawMessage `json:"maze"`
}

// Store is the interface for maze storage backends.
type Store interface {
	// Put stores a record. An existing record with the same ID is
	// replaced.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns a MAZE_NOT_FOUND error
	// when no record has the ID.
	Get(ctx context.Context, id uuid.UUID) (*Record, error)

	// GetByName retrieves a record by name. Returns a MAZE_NOT_FOUND
	// error when no record has the name.
	GetByName(ctx context.Context, name string) (*Record, error)

	// List returns all records sorted by creation time, newest first.
	// The returned records omit the maze payload; Get fetches it.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases backend resources.
	Close() error
}

// New creates a record for a maze under the given name. The options
// are serialized so a record can reproduce its maze.
func New(name string, opts pipeline.Options, mazeJSON []byte) (*Record, error) {
	if err := errors.ValidateMazeName(name); err != nil {
		return nil, err
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Options:   optsJSON,
		Maze:      mazeJSON,
	}, nil
}

// notFound builds the standard missing-record error.
func notFound(ref string) error {
	return errors.New(errors.ErrCodeMazeNotFound, "maze %q not found", ref)
}
