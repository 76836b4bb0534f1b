// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func intPtr(n int) *int { return &n }

func fullProfile() *Profile {
	p := New("ING Business", "%d-%m-%Y", "Datum")
	p.ID = "0b8f6c2e-1f1a-4c58-9a55-7c3f3d1c2a10"
	p.ThousandsSeparator = SeparatorNone
	p.DecimalSeparator = SeparatorDot
	p.FileEncoding = EncodingWindows1252
	p.SkipLinesStart = 3
	p.SkipLinesEnd = 1
	p.Delimiter = DelimiterSemicolon
	p.QuoteChar = "'"
	p.HeaderRelabel = "0:Timestamp,12:DebitCredit"
	p.CurrencyColumn = "Currency"
	p.AmountColumn = "Amount"
	p.BalanceColumn = "Balance"
	p.OriginalCurrencyColumn = "Orig Currency"
	p.OriginalAmountColumn = "Orig Amount"
	p.DebitCreditColumn = "DebitCredit"
	p.DebitValue = "Af"
	p.CreditValue = "Bij"
	p.TransactionIDColumn = "Id"
	p.DescriptionColumn = "Description"
	p.NotesColumn = "Notes"
	p.ReferenceColumn = "Reference"
	p.PartnerNameColumn = "Counterparty"
	p.BankNameColumn = "Bank"
	p.BankAccountColumn = "IBAN"
	p.MergeDescriptionKeepNewlines = intPtr(0)
	p.BankAccountIBANFromDescription = true
	return p
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, SeparatorDot, d.ThousandsSeparator)
	assert.Equal(t, SeparatorComma, d.DecimalSeparator)
	assert.Equal(t, DelimiterComma, d.Delimiter)
	assert.Equal(t, EncodingUTF8, d.FileEncoding)
	assert.Equal(t, `"`, d.QuoteChar)
	assert.Equal(t, "D", d.DebitValue)
	assert.Equal(t, "C", d.CreditValue)
	assert.Nil(t, d.MergeDescriptionKeepNewlines)
	assert.False(t, d.BankAccountIBANFromDescription)
}

func TestProfile_JSONRoundTrip(t *testing.T) {
	for name, p := range map[string]*Profile{
		"defaults": New("Minimal", "%Y-%m-%d", "Date"),
		"full":     fullProfile(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(p)
			require.NoError(t, err)

			var got Profile
			require.NoError(t, json.Unmarshal(data, &got))
			if diff := cmp.Diff(p, &got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProfile_YAMLRoundTrip(t *testing.T) {
	for name, p := range map[string]*Profile{
		"defaults": New("Minimal", "%Y-%m-%d", "Date"),
		"full":     fullProfile(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := yaml.Marshal(p)
			require.NoError(t, err)

			var got Profile
			require.NoError(t, yaml.Unmarshal(data, &got))
			if diff := cmp.Diff(p, &got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProfile_UnsetKeysKeepDefaults(t *testing.T) {
	var fromJSON Profile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"n","timestamp_format":"%Y","timestamp_column":"Date"}`), &fromJSON))

	var fromYAML Profile
	require.NoError(t, yaml.Unmarshal([]byte("name: n\ntimestampFormat: '%Y'\ntimestampColumn: Date\n"), &fromYAML))

	want := New("n", "%Y", "Date")
	if diff := cmp.Diff(want, &fromJSON); diff != "" {
		t.Errorf("json defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, &fromYAML); diff != "" {
		t.Errorf("yaml defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile_YAMLRejectsUnknownKeys(t *testing.T) {
	var p Profile
	err := yaml.Unmarshal([]byte("name: n\ndelimeter: tab\n"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimeter")
}

func TestProfile_Clone(t *testing.T) {
	p := fullProfile()
	c := p.Clone()
	if diff := cmp.Diff(p, c); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	*c.MergeDescriptionKeepNewlines = 5
	c.Name = "changed"
	assert.Equal(t, 0, *p.MergeDescriptionKeepNewlines)
	assert.Equal(t, "ING Business", p.Name)

	var nilProfile *Profile
	assert.Nil(t, nilProfile.Clone())
}

func TestProfile_Columns(t *testing.T) {
	p := New("bank", "%Y", "Date")
	p.AmountColumn = "Amount"

	assert.Equal(t, map[Role]string{
		RoleTimestamp: "Date",
		RoleAmount:    "Amount",
	}, p.Columns())

	assert.Len(t, fullProfile().Columns(), 14)
}
