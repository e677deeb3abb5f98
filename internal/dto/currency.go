package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// CreateCurrencyRequest defines the payload for adding a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	IsPrimary    bool   `json:"isPrimary"`
}

// SaveCompanyRateRequest defines the payload for recording a company rate snapshot.
type SaveCompanyRateRequest struct {
	CompanyID     string          `json:"companyID" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	IsPrimary    bool   `json:"isPrimary"`
}

// CompanyRateResponse defines the data returned for a company rate snapshot.
type CompanyRateResponse struct {
	CompanyRateID string          `json:"companyRateID"`
	CompanyID     string          `json:"companyID"`
	CurrencyCode  string          `json:"currencyCode"`
	Rate          decimal.Decimal `json:"rate"`
	DateEffective time.Time       `json:"dateEffective"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		IsPrimary:    c.IsPrimary,
	}
}

// ToCompanyRateResponse converts a domain.CompanyRate to CompanyRateResponse DTO.
func ToCompanyRateResponse(r *domain.CompanyRate) CompanyRateResponse {
	return CompanyRateResponse{
		CompanyRateID: r.CompanyRateID,
		CompanyID:     r.CompanyID,
		CurrencyCode:  r.CurrencyCode,
		Rate:          r.Rate,
		DateEffective: r.DateEffective,
	}
}
