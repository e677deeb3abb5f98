package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
)

// currencyService provides currency lookups and per-company rate snapshots.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetCurrency retrieves a currency by code.
func (s *currencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", code, err)
	}
	return currency, nil
}

// GetPrimaryCurrency retrieves the tenant's primary currency.
func (s *currencyService) GetPrimaryCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindPrimaryCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find primary currency: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// CreateCurrency adds a new supported currency. Only one primary currency may
// exist; attempts to add a second are rejected.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsPrimary {
		existing, err := s.currencyRepo.FindPrimaryCurrency(ctx)
		if err == nil && existing != nil {
			return nil, fmt.Errorf("%w: primary currency %s already exists", apperrors.ErrConflict, existing.CurrencyCode)
		}
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Symbol:       req.Symbol,
		Name:         req.Name,
		IsPrimary:    req.IsPrimary,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("error", err.Error()), slog.String("currency_code", currency.CurrencyCode))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}
	return &currency, nil
}

// RateFor returns the exchange rate to primary currency for a company and
// currency on a date. The primary currency always converts at 1.
func (s *currencyService) RateFor(ctx context.Context, companyID, currencyCode string, on time.Time) (decimal.Decimal, error) {
	code := strings.ToUpper(currencyCode)

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find currency %s: %w", code, err)
	}
	if currency.IsPrimary {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.currencyRepo.FindCompanyRate(ctx, companyID, code, on)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no exchange rate for %s effective on or before %s: %w", code, on.Format("2006-01-02"), err)
	}
	return rate.Rate, nil
}

// SaveCompanyRate records a per-company rate snapshot.
func (s *currencyService) SaveCompanyRate(ctx context.Context, req dto.SaveCompanyRateRequest, creatorUserID string) (*domain.CompanyRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	code := strings.ToUpper(req.CurrencyCode)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", code, err)
	}
	if currency.IsPrimary {
		return nil, fmt.Errorf("%w: cannot record a rate for the primary currency", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.CompanyRate{
		CompanyRateID: uuid.NewString(),
		CompanyID:     req.CompanyID,
		CurrencyCode:  code,
		Rate:          req.Rate,
		DateEffective: req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCompanyRate(ctx, rate); err != nil {
		logger.Error("Failed to save company rate", slog.String("error", err.Error()), slog.String("company_id", req.CompanyID), slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to save company rate: %w", err)
	}
	return &rate, nil
}
