// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied to fields a profile leaves unset.
const (
	DefaultThousandsSeparator = SeparatorDot
	DefaultDecimalSeparator   = SeparatorComma
	DefaultEncoding           = EncodingUTF8
	DefaultDelimiter          = DelimiterComma
	DefaultQuoteChar          = `"`
	DefaultDebitValue         = "D"
	DefaultCreditValue        = "C"
)

// Profile is a sheet mapping: the settings needed to read one bank's
// statement export format.
type Profile struct {
	ID   string `json:"id" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`

	// Number formatting
	ThousandsSeparator Separator `json:"float_thousands_sep" yaml:"floatThousandsSep"`
	DecimalSeparator   Separator `json:"float_decimal_sep" yaml:"floatDecimalSep"`

	// File layout
	FileEncoding   Encoding  `json:"file_encoding" yaml:"fileEncoding"`
	SkipLinesStart int       `json:"skip_lines_start" yaml:"skipLinesStart"`
	SkipLinesEnd   int       `json:"skip_lines_end" yaml:"skipLinesEnd"`
	Delimiter      Delimiter `json:"delimiter" yaml:"delimiter"`
	QuoteChar      string    `json:"quotechar" yaml:"quotechar"`
	// HeaderRelabel renames columns by index, e.g. "0:Timestamp,12:DebitCredit".
	HeaderRelabel string `json:"header_relabel,omitempty" yaml:"headerRelabel,omitempty"`

	TimestampFormat string `json:"timestamp_format" yaml:"timestampFormat"`
	TimestampColumn string `json:"timestamp_column" yaml:"timestampColumn"`

	// Column bindings
	CurrencyColumn         string `json:"currency_column,omitempty" yaml:"currencyColumn,omitempty"`
	AmountColumn           string `json:"amount_column,omitempty" yaml:"amountColumn,omitempty"`
	BalanceColumn          string `json:"balance_column,omitempty" yaml:"balanceColumn,omitempty"`
	OriginalCurrencyColumn string `json:"original_currency_column,omitempty" yaml:"originalCurrencyColumn,omitempty"`
	OriginalAmountColumn   string `json:"original_amount_column,omitempty" yaml:"originalAmountColumn,omitempty"`
	DebitCreditColumn      string `json:"debit_credit_column,omitempty" yaml:"debitCreditColumn,omitempty"`
	DebitValue             string `json:"debit_value" yaml:"debitValue"`
	CreditValue            string `json:"credit_value" yaml:"creditValue"`
	TransactionIDColumn    string `json:"transaction_id_column,omitempty" yaml:"transactionIdColumn,omitempty"`
	DescriptionColumn      string `json:"description_column,omitempty" yaml:"descriptionColumn,omitempty"`
	NotesColumn            string `json:"notes_column,omitempty" yaml:"notesColumn,omitempty"`
	ReferenceColumn        string `json:"reference_column,omitempty" yaml:"referenceColumn,omitempty"`
	PartnerNameColumn      string `json:"partner_name_column,omitempty" yaml:"partnerNameColumn,omitempty"`
	BankNameColumn         string `json:"bank_name_column,omitempty" yaml:"bankNameColumn,omitempty"`
	BankAccountColumn      string `json:"bank_account_column,omitempty" yaml:"bankAccountColumn,omitempty"`

	// MergeDescriptionKeepNewlines controls line breaks inside the description
	// column: nil leaves them alone, 0 removes all of them, n keeps the first n.
	MergeDescriptionKeepNewlines *int `json:"merge_description_keep_newlines,omitempty" yaml:"mergeDescriptionKeepNewlines,omitempty"`

	BankAccountIBANFromDescription bool `json:"bank_account_iban_from_description" yaml:"bankAccountIbanFromDescription"`
}

// Defaults returns a profile holding only the default values.
func Defaults() Profile {
	return Profile{
		ThousandsSeparator: DefaultThousandsSeparator,
		DecimalSeparator:   DefaultDecimalSeparator,
		FileEncoding:       DefaultEncoding,
		Delimiter:          DefaultDelimiter,
		QuoteChar:          DefaultQuoteChar,
		DebitValue:         DefaultDebitValue,
		CreditValue:        DefaultCreditValue,
	}
}

// New returns a profile with the given name and default settings.
func New(name, timestampFormat, timestampColumn string) *Profile {
	p := Defaults()
	p.Name = name
	p.TimestampFormat = timestampFormat
	p.TimestampColumn = timestampColumn
	return &p
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.MergeDescriptionKeepNewlines != nil {
		n := *p.MergeDescriptionKeepNewlines
		c.MergeDescriptionKeepNewlines = &n
	}
	return &c
}

// UnmarshalJSON decodes onto the defaults so that absent keys keep them.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	tmp := plain(Defaults())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = Profile(tmp)
	return nil
}

// UnmarshalYAML decodes onto the defaults so that absent keys keep them.
// Unknown keys are rejected.
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if _, ok := yamlKeys[key.Value]; !ok {
				return fmt.Errorf("line %d: field %s not found in profile", key.Line, key.Value)
			}
		}
	}

	type plain Profile
	tmp := plain(Defaults())
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*p = Profile(tmp)
	return nil
}

var yamlKeys = func() map[string]struct{} {
	keys := make(map[string]struct{})
	t := reflect.TypeOf(Profile{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}()
