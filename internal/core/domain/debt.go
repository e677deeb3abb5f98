package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtType distinguishes receivables (owed to us) from payables (owed by us).
type DebtType string

const (
	Receivable DebtType = "RECEIVABLE"
	Payable    DebtType = "PAYABLE"
)

// PaymentMethod classifies how a debt payment was made. Cheque and giro
// instruments do not clear on the recorded payment date; their effective date
// is the withdrawal date.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCheque   PaymentMethod = "CHEQUE"
	PaymentGiro     PaymentMethod = "GIRO"
)

// ExternalDebt is an outstanding receivable or payable document tracked for
// aging and mutation reports.
type ExternalDebt struct {
	DebtID       string          `json:"debtID"`    // Primary Key (UUID)
	CompanyID    string          `json:"companyID"` // FK -> companies.company_id
	BranchID     string          `json:"branchID"`  // FK -> branches.branch_id
	DebtType     DebtType        `json:"debtType"`
	Number       string          `json:"number"` // Document number
	ContactName  string          `json:"contactName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	Amount       decimal.Decimal `json:"amount"` // Transaction-currency document total
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	AuditFields
}

// DebtPayment settles part or all of a specific debt document. Allocation is
// explicit per document: a payment row references exactly one debt, never a
// pooled or FIFO allocation.
type DebtPayment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	DebtID         string          `json:"debtID"`    // FK -> external_debts.debt_id
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	PaymentDate    time.Time       `json:"paymentDate"`
	WithdrawalDate *time.Time      `json:"withdrawalDate,omitempty"` // Required for cheque/giro
	AuditFields
}
