// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"testing"

	"github.com/ManuGH/sheetmap/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Profile)
		wantField string
	}{
		{"valid defaults", func(p *Profile) {}, ""},
		{"valid full", func(p *Profile) { *p = *fullProfile() }, ""},
		{"none/none allowed", func(p *Profile) {
			p.ThousandsSeparator, p.DecimalSeparator = SeparatorNone, SeparatorNone
		}, ""},
		{"empty quotechar allowed", func(p *Profile) { p.QuoteChar = "" }, ""},
		{"missing name", func(p *Profile) { p.Name = " " }, "name"},
		{"missing timestamp format", func(p *Profile) { p.TimestampFormat = "" }, "timestamp_format"},
		{"missing timestamp column", func(p *Profile) { p.TimestampColumn = "" }, "timestamp_column"},
		{"unknown thousands", func(p *Profile) { p.ThousandsSeparator = "apostrophe" }, "float_thousands_sep"},
		{"unknown decimal", func(p *Profile) { p.DecimalSeparator = "" }, "float_decimal_sep"},
		{"colliding separators", func(p *Profile) {
			p.ThousandsSeparator, p.DecimalSeparator = SeparatorComma, SeparatorComma
		}, "float_decimal_sep"},
		{"colliding dots", func(p *Profile) {
			p.ThousandsSeparator, p.DecimalSeparator = SeparatorDot, SeparatorDot
		}, "float_decimal_sep"},
		{"editor repairs collision", func(p *Profile) {
			p.ThousandsSeparator = SeparatorComma
			OnThousandsSeparatorChanged(p)
		}, ""},
		{"unknown encoding", func(p *Profile) { p.FileEncoding = "utf-32" }, "file_encoding"},
		{"unknown delimiter", func(p *Profile) { p.Delimiter = "pipe" }, "delimiter"},
		{"negative skip start", func(p *Profile) { p.SkipLinesStart = -1 }, "skip_lines_start"},
		{"negative skip end", func(p *Profile) { p.SkipLinesEnd = -1 }, "skip_lines_end"},
		{"long quotechar", func(p *Profile) { p.QuoteChar = `""` }, "quotechar"},
		{"negative merge", func(p *Profile) { p.MergeDescriptionKeepNewlines = intPtr(-1) }, "merge_description_keep_newlines"},
		{"relabel is not validated", func(p *Profile) { p.HeaderRelabel = "garbage" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("bank", "%Y-%m-%d", "Date")
			tt.mutate(p)

			err := p.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := validate.AsValidationError(err)
			require.True(t, ok, "expected a validation error, got %T", err)

			var fields []string
			for _, fe := range ve.Errors() {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestProfile_ValidateNil(t *testing.T) {
	var p *Profile
	assert.Error(t, p.Validate())
}
