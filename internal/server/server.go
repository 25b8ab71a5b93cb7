// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the extraction pipeline and the library submission
// over a small local HTTP API, so a browser popup can delegate to it.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paperclip/internal/httputil"
	"github.com/pdiddy/paperclip/internal/observability"
	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/internal/pipeline"
	"github.com/pdiddy/paperclip/pkg/types"
)

// maxRequestBytes caps request bodies; inline HTML pages can be large.
const maxRequestBytes = 16 << 20

// Extractor runs the metadata pipeline over a page.
type Extractor interface {
	Run(ctx context.Context, acc page.Accessor) (pipeline.Result, error)
}

// Submitter posts a submission to the library.
type Submitter interface {
	Submit(ctx context.Context, token string, sub types.Submission) (string, error)
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Extractor Extractor
	Submitter Submitter

	// Fetcher downloads pages for extract requests that carry no HTML.
	Fetcher httputil.Doer

	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Metrics  *observability.Metrics
	Logger   zerolog.Logger
}

// Server is the local HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	deps       Deps
	cfg        types.Config
	logger     zerolog.Logger
}

// New creates a Server listening on cfg.Server.Addr.
func New(cfg types.Config, deps Deps) *Server {
	s := &Server{
		deps:   deps,
		cfg:    cfg,
		logger: observability.Component(deps.Logger, "http-server"),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.healthHandler)
	if s.deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/extract", s.extractHandler)
		r.Post("/submit", s.submitHandler)
	})
	return r
}

// Start listens and serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
