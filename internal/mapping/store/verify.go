// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"fmt"

	"github.com/ManuGH/sheetmap/internal/persistence/sqlite"
)

// VerifyReport describes a profile database on disk.
type VerifyReport struct {
	sqlite.IntegrityReport
	// Profiles counts the stored rows that were read.
	Profiles int
}

// Verify checks the profile database at path without writing to it: sqlite
// page integrity first, then the schema version, then every stored profile
// against the write-time rules. Rows written by an older build or by hand
// can break rules the schema does not encode, such as colliding separators.
func Verify(ctx context.Context, path, mode string) (VerifyReport, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return VerifyReport{}, err
	}
	defer func() { _ = db.Close() }()

	integrity, err := sqlite.VerifyIntegrity(ctx, db, mode)
	if err != nil {
		return VerifyReport{}, err
	}
	rep := VerifyReport{IntegrityReport: integrity}
	if !rep.OK() {
		return rep, nil
	}
	if rep.SchemaVersion != schemaVersion {
		rep.Issues = append(rep.Issues,
			fmt.Sprintf("schema version %d, expected %d", rep.SchemaVersion, schemaVersion))
		return rep, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT `+profileColumns+` FROM mapping_profiles ORDER BY name, id`)
	if err != nil {
		return rep, fmt.Errorf("read profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return rep, fmt.Errorf("scan profile: %w", err)
		}
		rep.Profiles++
		if err := p.Validate(); err != nil {
			rep.Issues = append(rep.Issues, fmt.Sprintf("profile %s (%s): %v", p.ID, p.Name, err))
		}
	}
	if err := rows.Err(); err != nil {
		return rep, fmt.Errorf("read profiles: %w", err)
	}
	return rep, nil
}
