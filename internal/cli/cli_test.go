package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
)

// execute runs the root command with args on a fresh CLI.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestGenerateCommandWritesMaze(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "maze.json")

	err := execute(t,
		"generate", "--rows", "6", "--cols", "6", "--seed", "11",
		"-o", out, "--no-cache")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	g, err := mazeio.ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	census := maze.TakeCensus(g)
	if census.Cells != 36 {
		t.Errorf("Cells = %d, want 36", census.Cells)
	}
	if census.Components != 1 || census.Characteristic() != 0 {
		t.Errorf("census = %+v, want a perfect maze", census)
	}
}

func TestGenerateCommandDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	for _, out := range []string{a, b} {
		err := execute(t,
			"generate", "--rows", "5", "--cols", "5", "--seed", "3",
			"--algorithm", "sw", "-o", out, "--no-cache")
		if err != nil {
			t.Fatalf("generate error = %v", err)
		}
	}

	dataA, _ := os.ReadFile(a)
	dataB, _ := os.ReadFile(b)
	if string(dataA) != string(dataB) {
		t.Error("same seed produced different maze documents")
	}
}

func TestGenerateCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad topology", []string{"generate", "-t", "klein-bottle", "--no-cache"}},
		{"bad algorithm", []string{"generate", "-a", "minotaur", "--no-cache"}},
		{"bad bias", []string{"generate", "-a", "sidewinder", "--bias", "1.5", "--no-cache"}},
		{"masked without mask", []string{"generate", "-t", "masked", "--no-cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenderCommandText(t *testing.T) {
	dir := t.TempDir()
	mazePath := filepath.Join(dir, "maze.json")
	outPath := filepath.Join(dir, "maze.txt")

	err := execute(t,
		"generate", "--rows", "4", "--cols", "4", "--seed", "5",
		"-o", mazePath, "--no-cache")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	err = execute(t,
		"render", mazePath, "-f", "txt", "-o", outPath,
		"--cache-dir", filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read render output: %v", err)
	}
	if !strings.Contains(string(data), "─") {
		t.Errorf("render output = %q, want unicode walls", data)
	}
}

func TestRenderCommandMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	mazePath := filepath.Join(dir, "maze.json")

	err := execute(t,
		"generate", "--rows", "3", "--cols", "3", "-o", mazePath, "--no-cache")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	err = execute(t,
		"render", mazePath, "-f", "txt,dot",
		"-o", filepath.Join(dir, "out"), "--no-cache")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	for _, ext := range []string{"txt", "dot"} {
		if _, err := os.Stat(filepath.Join(dir, "out."+ext)); err != nil {
			t.Errorf("missing out.%s: %v", ext, err)
		}
	}

	dot, _ := os.ReadFile(filepath.Join(dir, "out.dot"))
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("dot output starts with %q, want digraph G {", firstLine(string(dot)))
	}
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	mazePath := filepath.Join(dir, "maze.json")

	err := execute(t,
		"generate", "--rows", "4", "--cols", "4", "-o", mazePath, "--no-cache")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	if err := execute(t, "stats", mazePath, "--json"); err != nil {
		t.Errorf("stats error = %v", err)
	}
}

func TestRenderCommandMissingInput(t *testing.T) {
	if err := execute(t, "render", filepath.Join(t.TempDir(), "ghost.json"), "--no-cache"); err == nil {
		t.Error("render on a missing file should error")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
