// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// ParseOptions is the read-only view an import collaborator needs to set up
// its reader for a profile.
type ParseOptions struct {
	ProfileID   string `json:"profile_id"`
	ProfileName string `json:"profile_name"`

	// Delimiter is meaningful only when HasDelimiter is true.
	Delimiter     rune   `json:"-"`
	DelimiterText string `json:"delimiter"`
	HasDelimiter  bool   `json:"has_delimiter"`
	QuoteChar     string `json:"quotechar"`

	Encoding Encoding          `json:"file_encoding"`
	Charset  encoding.Encoding `json:"-"`

	SkipLinesStart int `json:"skip_lines_start"`
	SkipLinesEnd   int `json:"skip_lines_end"`

	ThousandsSymbol string `json:"thousands_symbol"`
	DecimalSymbol   string `json:"decimal_symbol"`

	TimestampFormat string          `json:"timestamp_format"`
	Columns         map[Role]string `json:"columns"`
	HeaderRelabel   map[int]string  `json:"header_relabel,omitempty"`

	DebitValue  string `json:"debit_value"`
	CreditValue string `json:"credit_value"`

	MergeDescriptionKeepNewlines   *int `json:"merge_description_keep_newlines,omitempty"`
	BankAccountIBANFromDescription bool `json:"bank_account_iban_from_description"`
}

// ParseOptions resolves every lookup of the profile in one go. It fails on
// a nil profile, an unknown separator or encoding, or a malformed relabel.
func (p *Profile) ParseOptions() (ParseOptions, error) {
	if p == nil {
		return ParseOptions{}, ErrInvalidSelection
	}

	thousands, decimal, err := p.FloatSeparators()
	if err != nil {
		return ParseOptions{}, err
	}
	charset, err := p.FileEncoding.Charset()
	if err != nil {
		return ParseOptions{}, err
	}
	relabel, err := ParseHeaderRelabel(p.HeaderRelabel)
	if err != nil {
		return ParseOptions{}, fmt.Errorf("profile %s: %w", p.ID, err)
	}

	delim, ok := p.DelimiterChar()
	opts := ParseOptions{
		ProfileID:                      p.ID,
		ProfileName:                    p.Name,
		Delimiter:                      delim,
		HasDelimiter:                   ok,
		QuoteChar:                      p.QuoteChar,
		Encoding:                       p.FileEncoding,
		Charset:                        charset,
		SkipLinesStart:                 p.SkipLinesStart,
		SkipLinesEnd:                   p.SkipLinesEnd,
		ThousandsSymbol:                thousands,
		DecimalSymbol:                  decimal,
		TimestampFormat:                p.TimestampFormat,
		Columns:                        p.Columns(),
		DebitValue:                     p.DebitValue,
		CreditValue:                    p.CreditValue,
		BankAccountIBANFromDescription: p.BankAccountIBANFromDescription,
	}
	if ok {
		opts.DelimiterText = string(delim)
	}
	if len(relabel) > 0 {
		opts.HeaderRelabel = relabel
	}
	if p.MergeDescriptionKeepNewlines != nil {
		n := *p.MergeDescriptionKeepNewlines
		opts.MergeDescriptionKeepNewlines = &n
	}
	return opts, nil
}
