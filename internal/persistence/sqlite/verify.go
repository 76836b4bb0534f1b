package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// Verification modes accepted by VerifyIntegrity.
const (
	ModeQuick = "quick"
	ModeFull  = "full"
)

// IntegrityReport is the outcome of VerifyIntegrity.
type IntegrityReport struct {
	Mode          string
	SchemaVersion int
	// Issues holds the diagnostic rows of a failed check. Callers may
	// append their own findings.
	Issues []string
}

// OK reports whether no issue was recorded.
func (r IntegrityReport) OK() bool {
	return len(r.Issues) == 0
}

// OpenReadOnly opens an existing database file without write access. Unlike
// sql.Open it fails when path does not exist instead of creating it.
func OpenReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(2000)", path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open read-only: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// VerifyIntegrity runs PRAGMA quick_check (ModeQuick) or integrity_check
// (ModeFull) on db and records the schema user_version. A healthy database
// answers with exactly one "ok" row.
func VerifyIntegrity(ctx context.Context, db *sql.DB, mode string) (IntegrityReport, error) {
	var pragma string
	switch mode {
	case ModeQuick:
		pragma = "PRAGMA quick_check"
	case ModeFull:
		pragma = "PRAGMA integrity_check"
	default:
		return IntegrityReport{}, fmt.Errorf("sqlite: unknown verification mode %q", mode)
	}

	rep := IntegrityReport{Mode: mode}

	rows, err := db.QueryContext(ctx, pragma)
	if err != nil {
		return rep, fmt.Errorf("integrity pragma failed: %w", err)
	}
	var results []string
	for rows.Next() {
		var res string
		if err := rows.Scan(&res); err != nil {
			_ = rows.Close()
			return rep, fmt.Errorf("failed to scan integrity result row: %w", err)
		}
		results = append(results, res)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return rep, fmt.Errorf("integrity result iteration failed: %w", err)
	}

	switch {
	case len(results) == 0:
		rep.Issues = []string{"no results returned from integrity check"}
		return rep, nil
	case len(results) == 1 && strings.EqualFold(results[0], "ok"):
	default:
		rep.Issues = results
		return rep, nil
	}

	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&rep.SchemaVersion); err != nil {
		return rep, fmt.Errorf("read schema version: %w", err)
	}
	return rep, nil
}
