package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/dto"
)

// CurrencySvcFacade covers currency lookup and per-company rate snapshots.
type CurrencySvcFacade interface {
	// GetCurrency retrieves a currency by code.
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)

	// GetPrimaryCurrency retrieves the tenant's primary currency.
	GetPrimaryCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// CreateCurrency adds a new supported currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// RateFor returns the exchange rate to primary currency for a company and
	// currency on a date: 1 for the primary currency, otherwise the latest
	// company rate snapshot effective on or before that date.
	RateFor(ctx context.Context, companyID, currencyCode string, on time.Time) (decimal.Decimal, error)

	// SaveCompanyRate records a per-company rate snapshot.
	SaveCompanyRate(ctx context.Context, req dto.SaveCompanyRateRequest, creatorUserID string) (*domain.CompanyRate, error)
}

// CompanySvcFacade covers company and branch management.
type CompanySvcFacade interface {
	// GetCompany retrieves a company by ID.
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// CreateCompany adds a new company.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// DeleteCompany removes a company; blocked when branches or accounts
	// reference it.
	DeleteCompany(ctx context.Context, companyID string, requestingUserID string) error

	// GetBranch retrieves a branch by ID.
	GetBranch(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves branches, optionally scoped to one company.
	ListBranches(ctx context.Context, companyID *string) ([]domain.Branch, error)

	// CreateBranch adds a new branch.
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)
}
