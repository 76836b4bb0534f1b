// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package profilefile reads and writes mapping profiles as YAML documents and
// keeps a profile store in step with such a file.
package profilefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/sheetmap/internal/mapping"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ErrAmbiguousName is returned by Sync when a profile without ID matches more
// than one stored profile by name.
var ErrAmbiguousName = errors.New("profile name matches more than one stored profile")

// File is the on-disk layout.
type File struct {
	Profiles []*mapping.Profile `yaml:"profiles"`
}

// Load reads the profiles in path. Unset fields take their defaults; unknown
// keys are an error.
func Load(path string) ([]*mapping.Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}
	return Decode(data)
}

// Decode parses a single YAML document holding a profiles list.
func Decode(data []byte) ([]*mapping.Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []*mapping.Profile{}, nil
		}
		return nil, fmt.Errorf("parse profile file: %w", err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse profile file: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse profile file: %w", err)
	}

	for i, p := range f.Profiles {
		if p == nil {
			return nil, fmt.Errorf("parse profile file: profiles[%d] is empty", i)
		}
	}
	if f.Profiles == nil {
		f.Profiles = []*mapping.Profile{}
	}
	return f.Profiles, nil
}

// Check validates every profile and reports the first failure with its
// position in the file. Profiles without ID are matched by name, so two of
// them sharing a name is rejected with ErrAmbiguousName.
func Check(profiles []*mapping.Profile) error {
	unnamed := make(map[string]int)
	for i, p := range profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profiles[%d] (%s): %w", i, p.Name, err)
		}
		if p.ID != "" {
			continue
		}
		if first, ok := unnamed[p.Name]; ok {
			return fmt.Errorf("profiles[%d] (%s): %w: also at profiles[%d]", i, p.Name, ErrAmbiguousName, first)
		}
		unnamed[p.Name] = i
	}
	return nil
}

// Save writes profiles to path, replacing the file atomically.
func Save(path string, profiles []*mapping.Profile) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending profile file: %w", err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	enc := yaml.NewEncoder(pendingFile)
	enc.SetIndent(2)
	if err := enc.Encode(File{Profiles: profiles}); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace profile file: %w", err)
	}
	return nil
}

// Export writes every stored profile to path.
func Export(ctx context.Context, s store.Store, path string) (int, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := Save(path, profiles); err != nil {
		return 0, err
	}
	return len(profiles), nil
}

// SyncResult counts what Sync did.
type SyncResult struct {
	Created int
	Updated int
}

// Sync upserts every profile in path into s. A profile with an ID replaces
// the stored one with that ID. A profile without ID adopts the ID of the
// single stored profile with the same name, or is created fresh.
// The whole file is validated before anything is written.
func Sync(ctx context.Context, s store.Store, path string) (SyncResult, error) {
	profiles, err := Load(path)
	if err != nil {
		return SyncResult{}, err
	}
	return Apply(ctx, s, profiles)
}

// Apply upserts profiles into s with the rules of Sync.
func Apply(ctx context.Context, s store.Store, profiles []*mapping.Profile) (SyncResult, error) {
	var res SyncResult
	if err := Check(profiles); err != nil {
		return res, err
	}

	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		p = p.Clone()
		if p.ID == "" {
			matches, err := store.FindByName(ctx, s, p.Name)
			if err != nil {
				return res, err
			}
			switch len(matches) {
			case 0:
				if _, err := store.Create(ctx, s, p); err != nil {
					return res, fmt.Errorf("create profile %q: %w", p.Name, err)
				}
				res.Created++
				continue
			case 1:
				p.ID = matches[0].ID
			default:
				return res, fmt.Errorf("%w: %q", ErrAmbiguousName, p.Name)
			}
		} else {
			if _, err := s.Get(ctx, p.ID); errors.Is(err, store.ErrNotFound) {
				if err := s.Put(ctx, p); err != nil {
					return res, fmt.Errorf("put profile %s: %w", p.ID, err)
				}
				res.Created++
				continue
			} else if err != nil {
				return res, err
			}
		}

		if err := s.Put(ctx, p); err != nil {
			return res, fmt.Errorf("put profile %s: %w", p.ID, err)
		}
		res.Updated++
	}
	return res, nil
}
