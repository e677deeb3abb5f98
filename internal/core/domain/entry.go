package domain

import "github.com/shopspring/decimal"

// JournalEntry represents a single line within a Journal, affecting one
// account. Amounts are carried twice: in the transaction currency
// (Debit/Credit) and converted to the tenant's primary currency
// (PrimaryCurrencyDebit/Credit = amount x ExchangeRate, computed at write
// time). Reports trust the stored converted amounts and never re-derive them,
// so ExchangeRate is immutable once posted.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`      // Primary Key (UUID)
	JournalID    string          `json:"journalID"`    // FK -> journals.journal_id
	AccountID    string          `json:"accountID"`    // FK -> accounts.account_id; never a parent account
	Debit        decimal.Decimal `json:"debit"`        // Transaction-currency amount; zero if credit side
	Credit       decimal.Decimal `json:"credit"`       // Transaction-currency amount; zero if debit side
	CurrencyCode string          `json:"currencyCode"` // FK -> currencies.currency_code
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Rate to primary currency, captured at posting time

	PrimaryCurrencyDebit  decimal.Decimal `json:"primaryCurrencyDebit"`
	PrimaryCurrencyCredit decimal.Decimal `json:"primaryCurrencyCredit"`

	Notes string `json:"notes"`
	AuditFields
}

// IsDebit reports whether this entry carries a debit amount.
func (e JournalEntry) IsDebit() bool {
	return !e.Debit.IsZero()
}
