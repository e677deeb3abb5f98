package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// CreateDebtRequest defines the payload for recording a receivable/payable document.
type CreateDebtRequest struct {
	CompanyID    string           `json:"companyID" binding:"required"`
	BranchID     string           `json:"branchID" binding:"required"`
	DebtType     domain.DebtType  `json:"debtType" binding:"required,oneof=RECEIVABLE PAYABLE"`
	Number       string           `json:"number" binding:"required"`
	ContactName  string           `json:"contactName" binding:"required"`
	IssueDate    time.Time        `json:"issueDate" binding:"required"`
	DueDate      time.Time        `json:"dueDate" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
}

// RecordPaymentRequest defines the payload for settling part of a debt document.
// WithdrawalDate is required for cheque and giro payments.
type RecordPaymentRequest struct {
	DebtID         string               `json:"debtID" binding:"required"`
	Amount         decimal.Decimal      `json:"amount" binding:"required"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH TRANSFER CHEQUE GIRO"`
	PaymentDate    time.Time            `json:"paymentDate" binding:"required"`
	WithdrawalDate *time.Time           `json:"withdrawalDate"`
}

// DebtResponse defines the data returned for a debt document.
type DebtResponse struct {
	DebtID       string          `json:"debtID"`
	CompanyID    string          `json:"companyID"`
	BranchID     string          `json:"branchID"`
	DebtType     string          `json:"debtType"`
	Number       string          `json:"number"`
	ContactName  string          `json:"contactName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// PaymentResponse defines the data returned for a debt payment.
type PaymentResponse struct {
	PaymentID      string          `json:"paymentID"`
	DebtID         string          `json:"debtID"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	PaymentDate    time.Time       `json:"paymentDate"`
	WithdrawalDate *time.Time      `json:"withdrawalDate,omitempty"`
}

// ToDebtResponse converts a domain.ExternalDebt to DebtResponse DTO.
func ToDebtResponse(d *domain.ExternalDebt) DebtResponse {
	return DebtResponse{
		DebtID:       d.DebtID,
		CompanyID:    d.CompanyID,
		BranchID:     d.BranchID,
		DebtType:     string(d.DebtType),
		Number:       d.Number,
		ContactName:  d.ContactName,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
	}
}

// ToPaymentResponse converts a domain.DebtPayment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.DebtPayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		DebtID:         p.DebtID,
		Amount:         p.Amount,
		Method:         string(p.Method),
		PaymentDate:    p.PaymentDate,
		WithdrawalDate: p.WithdrawalDate,
	}
}
