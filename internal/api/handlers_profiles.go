// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/mapping"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/ManuGH/sheetmap/internal/metrics"
	"github.com/go-chi/chi/v5"
)

func decodeProfile(r *http.Request, w http.ResponseWriter) (*mapping.Profile, error) {
	var p mapping.Profile
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", errBadRequest, err)
	}
	return &p, nil
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// handleCreateProfile stores a new profile. Unset fields take their defaults
// and any client-supplied id is replaced.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProfile(r, w)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = ""

	created, err := store.Create(r.Context(), s.store, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RecordProfileWrite(metrics.OpCreate, 1)
	s.RefreshProfileCount(r.Context())

	ctx := xlog.ContextWithProfileID(r.Context(), created.ID)
	logger := xlog.WithComponentFromContext(ctx, "api")
	logger.Info().
		Str(xlog.FieldEvent, "profile.created").
		Str(xlog.FieldProfile, created.Name).
		Msg("mapping profile created")

	w.Header().Set("Location", "/api/v1/profiles/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleReplaceProfile overwrites an existing profile. Fields missing from
// the body are reset to their defaults, not merged.
func (s *Server) handleReplaceProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := decodeProfile(r, w)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = id

	if err := s.store.Put(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RecordProfileWrite(metrics.OpUpdate, 1)

	xlog.FromContext(r.Context()).Info().
		Str(xlog.FieldEvent, "profile.saved").
		Msg("mapping profile saved")
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RecordProfileWrite(metrics.OpDelete, 1)
	s.RefreshProfileCount(r.Context())

	xlog.FromContext(r.Context()).Info().
		Str(xlog.FieldEvent, "profile.deleted").
		Msg("mapping profile deleted")
	w.WriteHeader(http.StatusNoContent)
}

// separatorEdit is an editor change of exactly one separator field.
type separatorEdit struct {
	Thousands *mapping.Separator `json:"float_thousands_sep"`
	Decimal   *mapping.Separator `json:"float_decimal_sep"`
}

// handlePatchSeparators applies one separator edit the way the profile
// editor does: set the field, then let the change rule fix up the other
// field if both now name the same symbol.
func (s *Server) handlePatchSeparators(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var edit separatorEdit
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&edit); err != nil {
		writeError(w, r, fmt.Errorf("%w: decode separator edit: %v", errBadRequest, err))
		return
	}
	if (edit.Thousands == nil) == (edit.Decimal == nil) {
		writeError(w, r, fmt.Errorf("%w: set exactly one of float_thousands_sep, float_decimal_sep", errBadRequest))
		return
	}

	p, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var (
		corrected bool
		field     string
	)
	if edit.Thousands != nil {
		p.ThousandsSeparator = *edit.Thousands
		corrected = mapping.OnThousandsSeparatorChanged(p)
		field = metrics.FieldDecimal
	} else {
		p.DecimalSeparator = *edit.Decimal
		corrected = mapping.OnDecimalSeparatorChanged(p)
		field = metrics.FieldThousands
	}

	if err := s.store.Put(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RecordProfileWrite(metrics.OpUpdate, 1)
	if corrected {
		metrics.RecordSeparatorCorrection(field)
		xlog.FromContext(r.Context()).Info().
			Str(xlog.FieldEvent, "profile.separator_corrected").
			Str("field", field).
			Msg("separator adjusted to keep thousands and decimal apart")
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleParseOptions(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := p.ParseOptions()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
