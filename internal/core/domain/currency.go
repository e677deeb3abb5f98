package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency. Exactly one currency per tenant
// has IsPrimary=true; all stored primary_currency amounts are in that currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "IDR")
	Symbol       string `json:"symbol"`       // e.g., "Rp"
	Name         string `json:"name"`         // e.g., "Indonesian Rupiah"
	IsPrimary    bool   `json:"isPrimary"`
	AuditFields
}

// CompanyRate is a per-company exchange rate snapshot used to default the
// exchange rate on journal entries at document-creation time.
type CompanyRate struct {
	CompanyRateID string          `json:"companyRateID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`     // FK -> companies.company_id
	CurrencyCode  string          `json:"currencyCode"`  // FK -> currencies.currency_code
	Rate          decimal.Decimal `json:"rate"`          // Units of primary currency per one unit of CurrencyCode
	DateEffective time.Time       `json:"dateEffective"`
	AuditFields
}
