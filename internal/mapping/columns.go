// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

// Role names the semantic meaning a statement column is bound to.
type Role string

const (
	RoleTimestamp        Role = "timestamp"
	RoleCurrency         Role = "currency"
	RoleAmount           Role = "amount"
	RoleBalance          Role = "balance"
	RoleOriginalCurrency Role = "original_currency"
	RoleOriginalAmount   Role = "original_amount"
	RoleDebitCredit      Role = "debit_credit"
	RoleTransactionID    Role = "transaction_id"
	RoleDescription      Role = "description"
	RoleNotes            Role = "notes"
	RoleReference        Role = "reference"
	RolePartnerName      Role = "partner_name"
	RoleBankName         Role = "bank_name"
	RoleBankAccount      Role = "bank_account"
)

// Columns returns the bound column for every role that has one.
func (p *Profile) Columns() map[Role]string {
	out := make(map[Role]string)
	if p == nil {
		return out
	}
	for role, col := range map[Role]string{
		RoleTimestamp:        p.TimestampColumn,
		RoleCurrency:         p.CurrencyColumn,
		RoleAmount:           p.AmountColumn,
		RoleBalance:          p.BalanceColumn,
		RoleOriginalCurrency: p.OriginalCurrencyColumn,
		RoleOriginalAmount:   p.OriginalAmountColumn,
		RoleDebitCredit:      p.DebitCreditColumn,
		RoleTransactionID:    p.TransactionIDColumn,
		RoleDescription:      p.DescriptionColumn,
		RoleNotes:            p.NotesColumn,
		RoleReference:        p.ReferenceColumn,
		RolePartnerName:      p.PartnerNameColumn,
		RoleBankName:         p.BankNameColumn,
		RoleBankAccount:      p.BankAccountColumn,
	} {
		if col != "" {
			out[role] = col
		}
	}
	return out
}
