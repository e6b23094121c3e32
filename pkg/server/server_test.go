package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mazekit/mazekit/pkg/archive"
	"github.com/mazekit/mazekit/pkg/cache"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})

	var store archive.Store
	if withStore {
		store, err = archive.NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore() error = %v", err)
		}
	}

	return New(Config{
		Runner: pipeline.NewRunner(fc, nil, logger),
		Store:  store,
		Logger: logger,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, false)
	w := doJSON(t, s.Handler(), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want %d", w.Code, http.StatusOK)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"status":"ok"`)) {
		t.Errorf("GET /healthz body = %q, want status ok", w.Body.String())
	}
}

func TestCreateUnnamed(t *testing.T) {
	s := newTestServer(t, false)
	body := `{"rows": 6, "cols": 6, "algorithm": "sidewinder", "seed": 3}`
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", body)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/mazes status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp createResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "" {
		t.Errorf("unnamed create ID = %q, want empty", resp.ID)
	}
	if resp.MazeHash == "" {
		t.Error("MazeHash is empty")
	}
	if resp.Stats.Cells != 36 {
		t.Errorf("Stats.Cells = %d, want 36", resp.Stats.Cells)
	}
	if resp.Stats.Passages != 35 {
		t.Errorf("Stats.Passages = %d, want 35", resp.Stats.Passages)
	}
	if resp.Stats.Topology != "rectangular" {
		t.Errorf("Stats.Topology = %q, want rectangular", resp.Stats.Topology)
	}
}

func TestCreateNamedAndGet(t *testing.T) {
	s := newTestServer(t, true)
	body := `{"rows": 5, "cols": 5, "seed": 7, "name": "demo"}`
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("named create status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp createResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("named create returned empty ID")
	}
	if resp.Name != "demo" {
		t.Errorf("Name = %q, want demo", resp.Name)
	}

	for _, ref := range []string{resp.ID, "demo"} {
		w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/"+ref, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET /api/v1/mazes/%s status = %d, want %d", ref, w.Code, http.StatusOK)
			continue
		}
		var rec archive.Record
		if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
			t.Fatalf("decode record: %v", err)
		}
		if rec.Name != "demo" {
			t.Errorf("record name = %q, want demo", rec.Name)
		}
		if len(rec.Maze) == 0 {
			t.Error("record maze payload is empty")
		}
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestServer(t, true)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/no-such-maze", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET missing status = %d, want %d", w.Code, http.StatusNotFound)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != "MAZE_NOT_FOUND" {
		t.Errorf("error code = %q, want MAZE_NOT_FOUND", resp.Error.Code)
	}
}

func TestCreateInvalidOptions(t *testing.T) {
	s := newTestServer(t, false)
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"bad json", `{"rows":`, "INVALID_INPUT"},
		{"bad topology", `{"topology": "klein-bottle"}`, "INVALID_TOPOLOGY"},
		{"bad algorithm", `{"algorithm": "minotaur"}`, "INVALID_ALGORITHM"},
		{"bad bias", `{"algorithm": "sidewinder", "bias": 2.0}`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			resp := decodeError(t, w)
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestList(t *testing.T) {
	s := newTestServer(t, true)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET list status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want []", got)
	}

	doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 4, "cols": 4, "name": "a"}`)
	doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 4, "cols": 4, "seed": 2, "name": "b"}`)

	w = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes", "")
	var records []*archive.Record
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	for _, rec := range records {
		if len(rec.Maze) != 0 {
			t.Errorf("list record %s carries maze payload", rec.Name)
		}
	}
}

func TestStoreUnavailable(t *testing.T) {
	s := newTestServer(t, false)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("list without store status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	w = doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 4, "cols": 4, "name": "a"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("named create without store status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != "UNAVAILABLE" {
		t.Errorf("error code = %q, want UNAVAILABLE", resp.Error.Code)
	}
}

func TestRenderText(t *testing.T) {
	s := newTestServer(t, true)
	doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 4, "cols": 4, "seed": 9, "name": "art"}`)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/art/render?format=txt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/plain; charset=utf-8", ct)
	}
	if !strings.Contains(w.Body.String(), "─") {
		t.Errorf("render body = %q, want unicode walls", w.Body.String())
	}

	// Same record again should serve the cached artifact byte for byte.
	first := w.Body.String()
	w = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/art/render?format=txt", "")
	if w.Body.String() != first {
		t.Error("repeated render differs from first render")
	}
}

func TestRenderASCIIStyle(t *testing.T) {
	s := newTestServer(t, true)
	doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 4, "cols": 4, "name": "plain"}`)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/plain/render?format=txt&style=ascii", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "+---+") || strings.Contains(w.Body.String(), "─") {
		t.Errorf("ascii render body = %q, want +---+ walls only", w.Body.String())
	}
}

func TestRenderDOT(t *testing.T) {
	s := newTestServer(t, true)
	doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 3, "cols": 3, "name": "graph"}`)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/graph/render?format=dot", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q, want text/vnd.graphviz", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "digraph G {") {
		t.Errorf("dot body starts with %q, want digraph G {", w.Body.String()[:min(20, w.Body.Len())])
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	s := newTestServer(t, true)
	doJSON(t, s.Handler(), http.MethodPost, "/api/v1/mazes", `{"rows": 3, "cols": 3, "name": "fmt"}`)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/fmt/render?format=gif", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("render status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != "INVALID_FORMAT" {
		t.Errorf("error code = %q, want INVALID_FORMAT", resp.Error.Code)
	}
}

func TestRenderMissingRecord(t *testing.T) {
	s := newTestServer(t, true)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/mazes/ghost/render", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("render missing status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
