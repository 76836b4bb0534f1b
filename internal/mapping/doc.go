// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package mapping defines the sheet mapping profile: the saved description of
// how a bank's statement export (CSV, TXT or spreadsheet) has to be read.
//
// A Profile is passive configuration. Besides field storage it only carries
// the editor-side correction rules for the number separators
// (OnThousandsSeparatorChanged, OnDecimalSeparatorChanged) and the lookups an
// import collaborator needs to parameterize its reader (FloatSeparators,
// DecodeDelimiter, Encoding.Charset, ParseOptions).
package mapping
