package repositories

import (
	"context"
	"time"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// DebtReader defines read operations for external debt data
type DebtReader interface {
	// FindDebtByID retrieves a debt document by its ID.
	FindDebtByID(ctx context.Context, debtID string) (*domain.ExternalDebt, error)

	// ListDebts retrieves debt documents of one type issued on or before the
	// given date, honoring company/branch scope.
	ListDebts(ctx context.Context, debtType domain.DebtType, issuedOnOrBefore time.Time, filter domain.BalanceFilter) ([]domain.ExternalDebt, error)

	// ListPaymentsByDebtIDs retrieves all payments applied to the given debt
	// documents, grouped by debt ID.
	ListPaymentsByDebtIDs(ctx context.Context, debtIDs []string) (map[string][]domain.DebtPayment, error)
}

// DebtWriter defines write operations for external debt data
type DebtWriter interface {
	// SaveDebt inserts a new debt document.
	SaveDebt(ctx context.Context, debt domain.ExternalDebt) error

	// SavePayment inserts a new payment against a specific debt document.
	SavePayment(ctx context.Context, payment domain.DebtPayment) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
