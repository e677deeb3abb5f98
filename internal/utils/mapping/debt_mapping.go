package mapping

import (
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/models"
)

// ToModelDebt converts a domain ExternalDebt to its relational shape.
func ToModelDebt(d domain.ExternalDebt) models.ExternalDebt {
	return models.ExternalDebt{
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
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model ExternalDebt back to the domain shape.
func ToDomainDebt(m models.ExternalDebt) domain.ExternalDebt {
	return domain.ExternalDebt{
		DebtID:       m.DebtID,
		CompanyID:    m.CompanyID,
		BranchID:     m.BranchID,
		DebtType:     domain.DebtType(m.DebtType),
		Number:       m.Number,
		ContactName:  m.ContactName,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain DebtPayment to its relational shape.
func ToModelPayment(d domain.DebtPayment) models.DebtPayment {
	return models.DebtPayment{
		PaymentID:      d.PaymentID,
		DebtID:         d.DebtID,
		Amount:         d.Amount,
		Method:         string(d.Method),
		PaymentDate:    d.PaymentDate,
		WithdrawalDate: d.WithdrawalDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model DebtPayment back to the domain shape.
func ToDomainPayment(m models.DebtPayment) domain.DebtPayment {
	return domain.DebtPayment{
		PaymentID:      m.PaymentID,
		DebtID:         m.DebtID,
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		PaymentDate:    m.PaymentDate,
		WithdrawalDate: m.WithdrawalDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
