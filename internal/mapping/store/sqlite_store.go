// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/sheetmap/internal/mapping"
	"github.com/ManuGH/sheetmap/internal/persistence/sqlite"
)

const schemaVersion = 1

// The CHECK constraints mirror the closed sets in package mapping so that
// rows written behind the store's back cannot hold out-of-set codes either.
const schema = `
CREATE TABLE IF NOT EXISTS mapping_profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	float_thousands_sep TEXT NOT NULL DEFAULT 'dot' CHECK (float_thousands_sep IN ('dot', 'comma', 'none')),
	float_decimal_sep TEXT NOT NULL DEFAULT 'comma' CHECK (float_decimal_sep IN ('dot', 'comma', 'none')),
	file_encoding TEXT NOT NULL DEFAULT 'utf-8' CHECK (file_encoding IN (
		'utf-8', 'utf-8-sig', 'utf-16', 'utf-16-sig', 'windows-1252', 'iso-8859-1', 'iso-8859-2',
		'iso-8859-4', 'big5', 'gb18030', 'shift_jis', 'windows-1251', 'koi8_r', 'koi8_u')),
	skip_lines_start INTEGER NOT NULL DEFAULT 0 CHECK (skip_lines_start >= 0),
	skip_lines_end INTEGER NOT NULL DEFAULT 0 CHECK (skip_lines_end >= 0),
	delimiter TEXT NOT NULL DEFAULT 'comma' CHECK (delimiter IN ('dot', 'comma', 'semicolon', 'tab', 'space', 'n/a')),
	quotechar TEXT NOT NULL DEFAULT '"',
	header_relabel TEXT NOT NULL DEFAULT '',
	timestamp_format TEXT NOT NULL,
	timestamp_column TEXT NOT NULL,
	currency_column TEXT NOT NULL DEFAULT '',
	amount_column TEXT NOT NULL DEFAULT '',
	balance_column TEXT NOT NULL DEFAULT '',
	original_currency_column TEXT NOT NULL DEFAULT '',
	original_amount_column TEXT NOT NULL DEFAULT '',
	debit_credit_column TEXT NOT NULL DEFAULT '',
	debit_value TEXT NOT NULL DEFAULT 'D',
	credit_value TEXT NOT NULL DEFAULT 'C',
	transaction_id_column TEXT NOT NULL DEFAULT '',
	description_column TEXT NOT NULL DEFAULT '',
	notes_column TEXT NOT NULL DEFAULT '',
	reference_column TEXT NOT NULL DEFAULT '',
	partner_name_column TEXT NOT NULL DEFAULT '',
	bank_name_column TEXT NOT NULL DEFAULT '',
	bank_account_column TEXT NOT NULL DEFAULT '',
	merge_description_keep_newlines INTEGER CHECK (merge_description_keep_newlines IS NULL OR merge_description_keep_newlines >= 0),
	bank_account_iban_from_description BOOLEAN NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mapping_profiles_name ON mapping_profiles(name);
`

const profileColumns = `id, name, float_thousands_sep, float_decimal_sep, file_encoding,
	skip_lines_start, skip_lines_end, delimiter, quotechar, header_relabel,
	timestamp_format, timestamp_column, currency_column, amount_column, balance_column,
	original_currency_column, original_amount_column, debit_credit_column, debit_value, credit_value,
	transaction_id_column, description_column, notes_column, reference_column, partner_name_column,
	bank_name_column, bank_account_column, merge_description_keep_newlines, bank_account_iban_from_description`

// SqliteStore implements Store using SQLite.
type SqliteStore struct {
	DB *sql.DB
}

// NewSqliteStore opens (and migrates) the profile database at dbPath.
func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	db, err := sqlite.Open(dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}

	if err := sqlite.Migrate(db, schemaVersion, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("profile store: migration failed: %w", err)
	}

	return &SqliteStore{DB: db}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*mapping.Profile, error) {
	var (
		p     mapping.Profile
		merge sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.ThousandsSeparator, &p.DecimalSeparator, &p.FileEncoding,
		&p.SkipLinesStart, &p.SkipLinesEnd, &p.Delimiter, &p.QuoteChar, &p.HeaderRelabel,
		&p.TimestampFormat, &p.TimestampColumn, &p.CurrencyColumn, &p.AmountColumn, &p.BalanceColumn,
		&p.OriginalCurrencyColumn, &p.OriginalAmountColumn, &p.DebitCreditColumn, &p.DebitValue, &p.CreditValue,
		&p.TransactionIDColumn, &p.DescriptionColumn, &p.NotesColumn, &p.ReferenceColumn, &p.PartnerNameColumn,
		&p.BankNameColumn, &p.BankAccountColumn, &merge, &p.BankAccountIBANFromDescription,
	)
	if err != nil {
		return nil, err
	}
	if merge.Valid {
		n := int(merge.Int64)
		p.MergeDescriptionKeepNewlines = &n
	}
	return &p, nil
}

func (s *SqliteStore) Get(ctx context.Context, id string) (*mapping.Profile, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM mapping_profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("profile store: get %s: %w", id, err)
	}
	return p, nil
}

func (s *SqliteStore) List(ctx context.Context) ([]*mapping.Profile, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+profileColumns+` FROM mapping_profiles ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("profile store: list: %w", err)
	}
	defer rows.Close()

	out := make([]*mapping.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("profile store: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SqliteStore) Put(ctx context.Context, p *mapping.Profile) error {
	if err := checkWritable(p); err != nil {
		return err
	}

	var merge sql.NullInt64
	if p.MergeDescriptionKeepNewlines != nil {
		merge = sql.NullInt64{Int64: int64(*p.MergeDescriptionKeepNewlines), Valid: true}
	}

	query := `
	INSERT INTO mapping_profiles (` + profileColumns + `, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		float_thousands_sep = excluded.float_thousands_sep,
		float_decimal_sep = excluded.float_decimal_sep,
		file_encoding = excluded.file_encoding,
		skip_lines_start = excluded.skip_lines_start,
		skip_lines_end = excluded.skip_lines_end,
		delimiter = excluded.delimiter,
		quotechar = excluded.quotechar,
		header_relabel = excluded.header_relabel,
		timestamp_format = excluded.timestamp_format,
		timestamp_column = excluded.timestamp_column,
		currency_column = excluded.currency_column,
		amount_column = excluded.amount_column,
		balance_column = excluded.balance_column,
		original_currency_column = excluded.original_currency_column,
		original_amount_column = excluded.original_amount_column,
		debit_credit_column = excluded.debit_credit_column,
		debit_value = excluded.debit_value,
		credit_value = excluded.credit_value,
		transaction_id_column = excluded.transaction_id_column,
		description_column = excluded.description_column,
		notes_column = excluded.notes_column,
		reference_column = excluded.reference_column,
		partner_name_column = excluded.partner_name_column,
		bank_name_column = excluded.bank_name_column,
		bank_account_column = excluded.bank_account_column,
		merge_description_keep_newlines = excluded.merge_description_keep_newlines,
		bank_account_iban_from_description = excluded.bank_account_iban_from_description,
		updated_at = excluded.updated_at
	`
	_, err := s.DB.ExecContext(ctx, query,
		p.ID, p.Name, string(p.ThousandsSeparator), string(p.DecimalSeparator), string(p.FileEncoding),
		p.SkipLinesStart, p.SkipLinesEnd, string(p.Delimiter), p.QuoteChar, p.HeaderRelabel,
		p.TimestampFormat, p.TimestampColumn, p.CurrencyColumn, p.AmountColumn, p.BalanceColumn,
		p.OriginalCurrencyColumn, p.OriginalAmountColumn, p.DebitCreditColumn, p.DebitValue, p.CreditValue,
		p.TransactionIDColumn, p.DescriptionColumn, p.NotesColumn, p.ReferenceColumn, p.PartnerNameColumn,
		p.BankNameColumn, p.BankAccountColumn, merge, p.BankAccountIBANFromDescription,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("profile store: put %s: %w", p.ID, err)
	}
	return nil
}

func (s *SqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM mapping_profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("profile store: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SqliteStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SqliteStore) Close() error {
	return s.DB.Close()
}
