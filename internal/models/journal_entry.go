package models

import "github.com/shopspring/decimal"

// JournalEntry is the relational shape of a journal line. Primary-currency
// amounts are denormalized at write time for fast reporting.
type JournalEntry struct {
	EntryID               string          `db:"entry_id"`
	JournalID             string          `db:"journal_id"`
	AccountID             string          `db:"account_id"`
	Debit                 decimal.Decimal `db:"debit"`
	Credit                decimal.Decimal `db:"credit"`
	CurrencyCode          string          `db:"currency_code"`
	ExchangeRate          decimal.Decimal `db:"exchange_rate"`
	PrimaryCurrencyDebit  decimal.Decimal `db:"primary_currency_debit"`
	PrimaryCurrencyCredit decimal.Decimal `db:"primary_currency_credit"`
	Notes                 string          `db:"notes"`
	AuditFields
}
