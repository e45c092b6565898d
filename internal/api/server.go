// Package api exposes the comicweb pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      build information
//	POST /v1/edges     run the pipeline on a JSON table
//	POST /v1/render    render an edge list (?format=svg|png|dot|csv|json|graph)
//	POST /v1/stats     per-character appearance counts
//
// Errors are returned as {"code": ..., "message": ...} with the status
// derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/comicweb/pkg/pipeline"
)

// MaxBodyBytes limits request bodies.
const MaxBodyBytes = 32 << 20

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger

	// AllowedOrigins configures CORS. Defaults to all origins.
	AllowedOrigins []string
}

// New creates a server that runs requests through runner. Request options
// are decoded on top of defaults.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:         runner,
		defaults:       defaults,
		logger:         logger.WithPrefix("api"),
		AllowedOrigins: []string{"*"},
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/edges", s.handleEdges)
		r.Post("/render", s.handleRender)
		r.Post("/stats", s.handleStats)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
