package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors the domain account type enum at the storage layer.
type AccountType string

// BalanceType mirrors the domain balance type enum at the storage layer.
type BalanceType string

// Account is the relational shape of an account row. Company and currency
// scoping live in the account_companies / account_currencies pivot tables.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	BalanceType     BalanceType     `db:"balance_type"`
	IsParent        bool            `db:"is_parent"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Persisted primary-currency balance
}
