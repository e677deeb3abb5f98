package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the relational shape of a currency row.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	IsPrimary    bool   `db:"is_primary"`
	AuditFields
}

// CompanyRate is the relational shape of a per-company rate snapshot.
type CompanyRate struct {
	CompanyRateID string          `db:"company_rate_id"`
	CompanyID     string          `db:"company_id"`
	CurrencyCode  string          `db:"currency_code"`
	Rate          decimal.Decimal `db:"rate"`
	DateEffective time.Time       `db:"date_effective"`
	AuditFields
}
