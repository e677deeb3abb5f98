package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier,
	// including company and currency scoping.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account visible to the given company
	// (company filter optional), ordered by code. Used to build the account tree.
	ListAccounts(ctx context.Context, companyID *string) ([]domain.Account, error)

	// HasJournalEntries reports whether any journal entry references the account.
	HasJournalEntries(ctx context.Context, accountID string) (bool, error)

	// HasChildren reports whether any account references this one as parent.
	HasChildren(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account with its company/currency pivots.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable account fields and pivots.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Dependent-record guards are enforced
	// by the service before this is called.
	DeleteAccount(ctx context.Context, accountID string) error

	// FindAccountsByIDsForUpdate locks the given account rows within tx and
	// returns them, for balance maintenance during posting.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to the locked rows.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
