// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"github.com/ManuGH/sheetmap/internal/validate"
)

func codes[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Validate checks the write-time constraints of a profile: required fields,
// closed enumerations, non-negative skip counts, a single-character quote
// and separators that never resolve to the same symbol. HeaderRelabel is
// left to the consumer.
//
// The separator check is stricter than the editor: OnThousandsSeparatorChanged
// and OnDecimalSeparatorChanged repair a dot/dot or comma/comma pair, but a
// profile written directly with such a pair is rejected here instead of being
// saved and failing later when amounts are parsed.
func (p *Profile) Validate() error {
	v := validate.New()
	if p == nil {
		v.AddError("profile", "profile is nil", nil)
		return v.Err()
	}

	v.NotEmpty("name", p.Name)
	v.NotEmpty("timestamp_format", p.TimestampFormat)
	v.NotEmpty("timestamp_column", p.TimestampColumn)

	v.OneOf("float_thousands_sep", string(p.ThousandsSeparator), codes(Separators()))
	v.OneOf("float_decimal_sep", string(p.DecimalSeparator), codes(Separators()))
	v.OneOf("file_encoding", string(p.FileEncoding), codes(Encodings()))
	v.OneOf("delimiter", string(p.Delimiter), codes(Delimiters()))

	v.NonNegative("skip_lines_start", p.SkipLinesStart)
	v.NonNegative("skip_lines_end", p.SkipLinesEnd)
	v.MaxRunes("quotechar", p.QuoteChar, 1)

	if p.MergeDescriptionKeepNewlines != nil {
		v.NonNegative("merge_description_keep_newlines", *p.MergeDescriptionKeepNewlines)
	}

	if p.ThousandsSeparator == p.DecimalSeparator && p.ThousandsSeparator != SeparatorNone && p.ThousandsSeparator.IsValid() {
		v.AddError("float_decimal_sep", "thousands and decimal separators must differ", string(p.DecimalSeparator))
	}

	return v.Err()
}
