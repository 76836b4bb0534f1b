// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package store persists mapping profiles keyed by their ID.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ManuGH/sheetmap/internal/mapping"
	"github.com/google/uuid"
)

// Backend names accepted by NewStore.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	dbName = "profiles.sqlite"
)

var (
	// ErrNotFound is returned when no profile has the requested ID.
	ErrNotFound = errors.New("mapping profile not found")
	// ErrMissingID is returned by Put for a profile without ID.
	ErrMissingID = errors.New("mapping profile has no id")
)

// Store is the persistence contract for mapping profiles. Put validates the
// profile and rejects it before anything is written. Returned profiles are
// copies; mutating them does not change the stored record.
type Store interface {
	Get(ctx context.Context, id string) (*mapping.Profile, error)
	List(ctx context.Context) ([]*mapping.Profile, error)
	Put(ctx context.Context, p *mapping.Profile) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore creates a profile store based on the backend.
// An empty backend means sqlite; sqlite without a directory falls back to memory.
func NewStore(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		if dir == "" {
			return NewMemoryStore(), nil
		}
		return NewSqliteStore(filepath.Join(dir, dbName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown profile store backend: %s (supported: sqlite, memory)", backend)
	}
}

// DBPath returns the sqlite file NewStore uses for dir.
func DBPath(dir string) string {
	return filepath.Join(dir, dbName)
}

// Create assigns a fresh ID to p when it has none and stores it.
func Create(ctx context.Context, s Store, p *mapping.Profile) (*mapping.Profile, error) {
	if p == nil {
		return nil, mapping.ErrInvalidSelection
	}
	c := p.Clone()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := s.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByName returns the profiles whose name equals name.
func FindByName(ctx context.Context, s Store, name string) ([]*mapping.Profile, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*mapping.Profile
	for _, p := range all {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func checkWritable(p *mapping.Profile) error {
	if p == nil {
		return mapping.ErrInvalidSelection
	}
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingID
	}
	return p.Validate()
}
