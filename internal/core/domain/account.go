package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	KasBank   AccountType = "KAS_BANK" // cash and bank accounts, may hold multiple currencies
)

// BalanceType defines which side of the ledger increases an account's balance.
type BalanceType string

const (
	DebitNormal  BalanceType = "DEBIT"  // assets, expenses
	CreditNormal BalanceType = "CREDIT" // liabilities, equity, revenue
)

// Account represents a node in the chart of accounts.
// Parent accounts (IsParent=true) never receive journal entries directly;
// their balance is the rollup of all descendants.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique, sortable account code
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	BalanceType     BalanceType `json:"balanceType"`     // DEBIT or CREDIT normal
	IsParent        bool        `json:"isParent"`        // Summary account flag
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	CompanyIDs      []string    `json:"companyIDs"`    // Companies this account is scoped to
	CurrencyCodes   []string    `json:"currencyCodes"` // Currencies this account may hold balances in
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted primary-currency balance (denormalized)
}

// BalanceCheck compares an account's persisted balance against the balance
// recomputed from its own journal entries. The two can only diverge if a
// posting transaction was tampered with outside the application.
type BalanceCheck struct {
	AccountID  string
	Stored     decimal.Decimal
	Computed   decimal.Decimal
	Consistent bool
}
