package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExternalDebt is the relational shape of a receivable/payable document.
type ExternalDebt struct {
	DebtID       string          `db:"debt_id"`
	CompanyID    string          `db:"company_id"`
	BranchID     string          `db:"branch_id"`
	DebtType     string          `db:"debt_type"`
	Number       string          `db:"number"`
	ContactName  string          `db:"contact_name"`
	IssueDate    time.Time       `db:"issue_date"`
	DueDate      time.Time       `db:"due_date"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	AuditFields
}

// DebtPayment is the relational shape of a payment row. Each payment settles
// exactly one debt document.
type DebtPayment struct {
	PaymentID      string          `db:"payment_id"`
	DebtID         string          `db:"debt_id"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	PaymentDate    time.Time       `db:"payment_date"`
	WithdrawalDate *time.Time      `db:"withdrawal_date"`
	AuditFields
}
