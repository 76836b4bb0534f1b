// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/mapping"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/ManuGH/sheetmap/internal/metrics"
	"github.com/ManuGH/sheetmap/internal/validate"
)

// errBadRequest marks client errors found while reading the request.
var errBadRequest = errors.New("bad request")

type errorBody struct {
	Error   string           `json:"error"`
	Detail  string           `json:"detail,omitempty"`
	Fields  []validate.Error `json:"fields,omitempty"`
	Request string           `json:"request_id,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and a JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBody{Request: xlog.RequestIDFromContext(r.Context())}

	if ve, ok := validate.AsValidationError(err); ok {
		metrics.RecordValidationError()
		body.Error = "validation_failed"
		body.Fields = ve.Errors()
		writeJSON(w, http.StatusBadRequest, body)
		return
	}

	var status int
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, body.Error = http.StatusNotFound, "not_found"
	case errors.Is(err, errBadRequest),
		errors.Is(err, mapping.ErrInvalidSelection),
		errors.Is(err, mapping.ErrUnknownSeparator),
		errors.Is(err, mapping.ErrUnknownEncoding),
		errors.Is(err, mapping.ErrInvalidRelabel):
		status, body.Error = http.StatusBadRequest, "bad_request"
		body.Detail = err.Error()
	default:
		xlog.FromContext(r.Context()).Error().
			Err(err).
			Str(xlog.FieldEvent, "api.internal_error").
			Msg("request failed")
		status, body.Error = http.StatusInternalServerError, "internal_error"
	}
	writeJSON(w, status, body)
}
