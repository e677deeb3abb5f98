package mapping

import (
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/models"
)

// ToDomainCurrency converts a model Currency to the domain shape.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		IsPrimary:    m.IsPrimary,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCurrency converts a domain Currency to its relational shape.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: d.CurrencyCode,
		Symbol:       d.Symbol,
		Name:         d.Name,
		IsPrimary:    d.IsPrimary,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompanyRate converts a model CompanyRate to the domain shape.
func ToDomainCompanyRate(m models.CompanyRate) domain.CompanyRate {
	return domain.CompanyRate{
		CompanyRateID: m.CompanyRateID,
		CompanyID:     m.CompanyID,
		CurrencyCode:  m.CurrencyCode,
		Rate:          m.Rate,
		DateEffective: m.DateEffective,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCompanyRate converts a domain CompanyRate to its relational shape.
func ToModelCompanyRate(d domain.CompanyRate) models.CompanyRate {
	return models.CompanyRate{
		CompanyRateID: d.CompanyRateID,
		CompanyID:     d.CompanyID,
		CurrencyCode:  d.CurrencyCode,
		Rate:          d.Rate,
		DateEffective: d.DateEffective,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}
