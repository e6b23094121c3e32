// Package server provides the mazekit HTTP API.
//
// The server exposes maze generation and rendering over REST:
//
//	POST /api/v1/mazes            generate a maze from JSON options
//	GET  /api/v1/mazes/{id}       fetch a stored maze record
//	GET  /api/v1/mazes/{id}/render?format=svg  render a stored maze
//	GET  /healthz                 liveness probe
//
// Generation runs synchronously in the request goroutine; a grid is
// never shared between requests. Rendered artifacts go through the
// runner's cache, so a Redis-backed runner shares renders across
// instances.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mazekit/mazekit/pkg/archive"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the generate/render pipeline. Nil gets an
	// uncached default runner.
	Runner *pipeline.Runner

	// Store persists named mazes. Nil disables the archive endpoints'
	// write path; reads return UNAVAILABLE.
	Store archive.Store

	// Logger receives request and error logs. Nil uses log.Default().
	Logger *log.Logger
}

// Server is the mazekit HTTP API server.
type Server struct {
	runner *pipeline.Runner
	store  archive.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server with its routes mounted.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/mazes", s.handleCreate)
		r.Get("/mazes", s.handleList)
		r.Get("/mazes/{id}", s.handleGet)
		r.Get("/mazes/{id}/render", s.handleRender)
	})

	s.router = r
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs each request with its duration and status.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
