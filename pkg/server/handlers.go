package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mazekit/mazekit/pkg/archive"
	"github.com/mazekit/mazekit/pkg/cache"
	"github.com/mazekit/mazekit/pkg/errors"
	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

// createRequest is the POST /api/v1/mazes body: pipeline options plus
// an optional archive name. A named maze is persisted; an unnamed one
// is returned inline only.
type createRequest struct {
	pipeline.Options
	Name string `json:"name,omitempty"`
}

// createResponse reports the created maze.
type createResponse struct {
	ID       string             `json:"id,omitempty"`
	Name     string             `json:"name,omitempty"`
	MazeHash string             `json:"maze_hash"`
	Stats    statsResponse      `json:"stats"`
	Cache    pipeline.CacheInfo `json:"cache"`
}

type statsResponse struct {
	Topology string `json:"topology"`
	Cells    int    `json:"cells"`
	Passages int    `json:"passages"`
	DeadEnds int    `json:"dead_ends"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}

	opts := req.Options
	if err := opts.ValidateForGenerate(); err != nil {
		writeError(w, err)
		return
	}

	g, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	mazeJSON, err := marshalMaze(g)
	if err != nil {
		writeError(w, err)
		return
	}

	census := maze.TakeCensus(g)
	resp := createResponse{
		MazeHash: hashBytes(mazeJSON),
		Stats: statsResponse{
			Topology: g.Topology(),
			Cells:    census.Cells,
			Passages: census.Passages,
			DeadEnds: census.DeadEnds,
		},
		Cache: pipeline.CacheInfo{GenerateHit: hit},
	}

	status := http.StatusOK
	if req.Name != "" {
		if s.store == nil {
			writeError(w, errors.New(errors.ErrCodeUnavailable, "no archive configured"))
			return
		}
		rec, err := archive.New(req.Name, opts, mazeJSON)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.store.Put(r.Context(), rec); err != nil {
			writeError(w, err)
			return
		}
		resp.ID = rec.ID.String()
		resp.Name = rec.Name
		status = http.StatusCreated
	}

	writeJSON(w, status, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeUnavailable, "no archive configured"))
		return
	}
	records, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*archive.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// renderContentTypes maps formats to their response content type.
var renderContentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	g, err := mazeio.ReadJSON(bytes.NewReader(rec.Maze))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "decode stored maze %s", rec.ID))
		return
	}

	opts := pipeline.Options{Formats: []string{format}}
	if style := r.URL.Query().Get("style"); style != "" {
		opts.Style = style
	}

	// Artifact cache keys on the stored maze bytes, so repeated
	// renders of the same record hit the shared cache.
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), g, hashBytes(rec.Maze), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", renderContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// lookup resolves the {id} path parameter against the archive,
// accepting either a record UUID or a record name.
func (s *Server) lookup(r *http.Request) (*archive.Record, error) {
	if s.store == nil {
		return nil, errors.New(errors.ErrCodeUnavailable, "no archive configured")
	}
	ref := chi.URLParam(r, "id")
	if id, err := uuid.Parse(ref); err == nil {
		return s.store.Get(r.Context(), id)
	}
	return s.store.GetByName(r.Context(), ref)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps coded errors to HTTP statuses and writes the error
// envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTopology,
		errors.ErrCodeInvalidAlgorithm, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidMask, errors.ErrCodeInvalidTemplate,
		errors.ErrCodeInvalidLink, errors.ErrCodeUnsupportedTopology:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeMazeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnavailable:
		status = http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func marshalMaze(g *maze.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := mazeio.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hashBytes(data []byte) string {
	return cache.Hash(data)
}
