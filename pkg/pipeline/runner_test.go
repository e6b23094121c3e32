package pipeline

import (
	"context"
	"testing"

	"github.com/mazekit/mazekit/pkg/cache"
	"github.com/mazekit/mazekit/pkg/maze"
)

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil {
		t.Error("Cache should default to NullCache")
	}
	if r.Keyer == nil {
		t.Error("Keyer should default to DefaultKeyer")
	}
	if r.Logger == nil {
		t.Error("Logger should default to log.Default()")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Rows:    6,
		Cols:    6,
		Formats: []string{"txt", "json"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Maze == nil {
		t.Fatal("Execute() returned nil maze")
	}
	if result.MazeHash == "" {
		t.Error("MazeHash is empty")
	}
	if len(result.Artifacts) != 2 {
		t.Errorf("len(Artifacts) = %d, want 2", len(result.Artifacts))
	}
	if result.Stats.Cells != 36 {
		t.Errorf("Stats.Cells = %d, want 36", result.Stats.Cells)
	}
	if result.Stats.Passages != 35 {
		t.Errorf("Stats.Passages = %d, want 35", result.Stats.Passages)
	}
	if result.CacheInfo.GenerateHit || result.CacheInfo.RenderHit {
		t.Error("NullCache run reported cache hits")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{Topology: "torus"}); err == nil {
		t.Error("invalid topology should fail")
	}
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	r := newFileRunner(t)
	defer r.Close()

	opts := Options{Rows: 5, Cols: 5, Seed: 11, Formats: []string{"txt"}}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.GenerateHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss on both stages")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.GenerateHit {
		t.Error("second run should hit the maze cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}

	if second.MazeHash != first.MazeHash {
		t.Errorf("MazeHash changed across cached runs: %s vs %s", first.MazeHash, second.MazeHash)
	}
	if string(second.Artifacts["txt"]) != string(first.Artifacts["txt"]) {
		t.Error("cached artifact differs from rendered artifact")
	}
}

func TestRunnerExecuteRefreshBypassesMazeCache(t *testing.T) {
	r := newFileRunner(t)
	defer r.Close()

	opts := Options{Rows: 5, Cols: 5, Formats: []string{"txt"}}
	ctx := context.Background()

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if result.CacheInfo.GenerateHit {
		t.Error("refresh run should regenerate the maze")
	}
}

func TestRunnerCacheKeysSeparateSeeds(t *testing.T) {
	r := newFileRunner(t)
	defer r.Close()

	ctx := context.Background()
	a, err := r.Execute(ctx, Options{Seed: 1, Formats: []string{"txt"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	b, err := r.Execute(ctx, Options{Seed: 2, Formats: []string{"txt"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if b.CacheInfo.GenerateHit {
		t.Error("different seed hit the first seed's maze entry")
	}
	if a.MazeHash == b.MazeHash {
		t.Error("different seeds produced the same maze hash")
	}
}

func TestRunnerCachedMazeRoundTrips(t *testing.T) {
	r := newFileRunner(t)
	defer r.Close()

	opts := Options{
		Topology:  maze.TopologyWeave,
		Rows:      6,
		Cols:      6,
		Algorithm: "kruskal-weave",
		Formats:   []string{"json"},
	}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.GenerateHit {
		t.Fatal("second run should hit the maze cache")
	}

	want := maze.TakeCensus(first.Maze)
	got := maze.TakeCensus(second.Maze)
	if got != want {
		t.Errorf("census after cache round trip = %+v, want %+v", got, want)
	}
	if second.Maze.Size() != first.Maze.Size() {
		t.Errorf("Size() = %d, want %d", second.Maze.Size(), first.Maze.Size())
	}
}

func TestRunnerRenderComputesHash(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	g, err := Generate(Options{Rows: 4, Cols: 4})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	artifacts, err := r.Render(context.Background(), g, Options{Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(artifacts["dot"]) == 0 {
		t.Error("dot artifact is empty")
	}
}
