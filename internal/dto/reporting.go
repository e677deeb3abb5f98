package dto

import (
	"time"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// ScopeParams are the explicit branch/company filters shared by report
// queries. They replace ambient session-stored filters.
type ScopeParams struct {
	BranchIDs  []string `form:"branchID"`
	CompanyIDs []string `form:"companyID"`
}

// Filter converts scope params into a domain balance filter.
func (p ScopeParams) Filter() domain.BalanceFilter {
	return domain.BalanceFilter{BranchIDs: p.BranchIDs, CompanyIDs: p.CompanyIDs}
}

// GeneralLedgerParams parameterizes a general ledger report.
type GeneralLedgerParams struct {
	AccountIDs []string  `form:"accountID" binding:"required,min=1"`
	From       time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To         time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	ScopeParams
}

// CashBankBookParams parameterizes a cash/bank book report. When AccountIDs
// is empty, every kas_bank account in scope is included.
type CashBankBookParams struct {
	AccountIDs []string  `form:"accountID"`
	From       time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To         time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	ScopeParams
}

// TrialBalanceResponse wraps trial balance rows with the report period.
type TrialBalanceResponse struct {
	From time.Time                `json:"from"`
	To   time.Time                `json:"to"`
	Rows []domain.TrialBalanceRow `json:"rows"`
}

// GeneralLedgerResponse wraps general ledger account sections with the period.
type GeneralLedgerResponse struct {
	From     time.Time                     `json:"from"`
	To       time.Time                     `json:"to"`
	Accounts []domain.GeneralLedgerAccount `json:"accounts"`
}

// CashBankBookResponse wraps cash/bank book sections with the period.
type CashBankBookResponse struct {
	From     time.Time                    `json:"from"`
	To       time.Time                    `json:"to"`
	Accounts []domain.CashBankBookAccount `json:"accounts"`
}
