// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"time"

	xlog "github.com/ManuGH/sheetmap/internal/log"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// handleHealth reports whether the profile store answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		xlog.FromContext(r.Context()).Warn().
			Err(err).
			Str(xlog.FieldEvent, "health.store_unreachable").
			Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Version: s.cfg.Version})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.cfg.Version})
}
