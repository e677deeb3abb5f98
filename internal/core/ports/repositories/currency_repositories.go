package repositories

import (
	"context"
	"time"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindPrimaryCurrency retrieves the tenant's primary currency.
	FindPrimaryCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency inserts a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CompanyRateReader defines read operations for per-company exchange rate snapshots
type CompanyRateReader interface {
	// FindCompanyRate retrieves the latest rate for a company and currency
	// effective on or before the given date.
	FindCompanyRate(ctx context.Context, companyID, currencyCode string, onOrBefore time.Time) (*domain.CompanyRate, error)
}

// CompanyRateWriter defines write operations for company rate snapshots
type CompanyRateWriter interface {
	// SaveCompanyRate inserts a new rate snapshot.
	SaveCompanyRate(ctx context.Context, rate domain.CompanyRate) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
	CompanyRateReader
	CompanyRateWriter
}
