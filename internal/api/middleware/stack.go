// SPDX-License-Identifier: MIT

package middleware

import (
	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// StackConfig configures the HTTP ingress middleware stack.
type StackConfig struct {
	EnableSecurityHeaders bool
	EnableMetrics         bool
	EnableLogging         bool

	// Tracing (OpenTelemetry); a nil TracerProvider uses the global one
	EnableTracing  bool
	TracerProvider trace.TracerProvider

	// Rate limiting (per client IP)
	EnableRateLimit bool
	RateLimitRPM    int
}

// NewRouter constructs a chi router with the middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the middleware stack to r.
func ApplyStack(r chi.Router, cfg StackConfig) {
	// 1. Recoverer (outermost safety net)
	r.Use(Recoverer)
	// 2. RequestID (correlation early)
	r.Use(RequestID)
	// 3. Tracing (after RequestID so spans carry it)
	if cfg.EnableTracing {
		r.Use(Tracing(cfg.TracerProvider))
	}
	// 4. Security headers
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(""))
	}
	// 5. Metrics (track all requests)
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	// 6. Logging (wraps handlers, captures full latency)
	if cfg.EnableLogging {
		r.Use(xlog.Middleware())
	}
	// 7. Rate limit
	if cfg.EnableRateLimit {
		r.Use(APIRateLimit(cfg.RateLimitRPM))
	}
}
