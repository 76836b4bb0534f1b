// SPDX-License-Identifier: MIT

// Package api serves the mapping profile HTTP API.
package api

import (
	"context"
	"net/http"

	"github.com/ManuGH/sheetmap/internal/api/middleware"
	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/ManuGH/sheetmap/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies on write endpoints.
const maxBodyBytes = 1 << 20

// Config holds the HTTP-facing options of the server.
type Config struct {
	Version          string
	RateLimitEnabled bool
	RateLimitRPM     int
	// DisableAccessLog turns off the per-request log line.
	DisableAccessLog bool
	// TracingEnabled wraps routes with OpenTelemetry spans from the global provider.
	TracingEnabled bool
}

// Server exposes a profile store over HTTP.
type Server struct {
	cfg    Config
	store  store.Store
	logger zerolog.Logger
}

// New creates a server backed by s.
func New(cfg Config, s store.Store) *Server {
	return &Server{
		cfg:    cfg,
		store:  s,
		logger: xlog.WithComponent("api"),
	}
}

// Handler returns the configured HTTP handler with all routes and middleware applied.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		EnableLogging:         !s.cfg.DisableAccessLog,
		EnableTracing:         s.cfg.TracingEnabled,
		EnableRateLimit:       s.cfg.RateLimitEnabled,
		RateLimitRPM:          s.cfg.RateLimitRPM,
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/profiles", func(r chi.Router) {
		r.Get("/", s.handleListProfiles)
		r.Post("/", s.handleCreateProfile)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(withProfileID)
			r.Get("/", s.handleGetProfile)
			r.Put("/", s.handleReplaceProfile)
			r.Delete("/", s.handleDeleteProfile)
			r.Patch("/separators", s.handlePatchSeparators)
			r.Get("/parse-options", s.handleParseOptions)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method_not_allowed"})
	})
	return r
}

// withProfileID tags the request context and its logger with the {id}
// path parameter.
func withProfileID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := xlog.ContextWithProfileID(r.Context(), chi.URLParam(r, "id"))
		logger := xlog.WithComponentFromContext(ctx, "api")
		next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx)))
	})
}

// RefreshProfileCount updates the stored-profiles gauge.
func (s *Server) RefreshProfileCount(ctx context.Context) {
	all, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str(xlog.FieldEvent, "metrics.profile_count_failed").Msg("could not count profiles")
		return
	}
	metrics.SetProfilesTotal(len(all))
}
