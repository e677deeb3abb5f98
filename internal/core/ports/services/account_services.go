package services

import (
	"context"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account, optionally scoped to a company,
	// ordered by code.
	ListAccounts(ctx context.Context, companyID *string) ([]domain.Account, error)

	// DescendantAccountIDs resolves the given account plus all transitive
	// children, failing on hierarchy cycles.
	DescendantAccountIDs(ctx context.Context, accountID string) ([]string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount applies mutable changes; balance type is immutable once
	// entries exist, and parent changes are cycle-checked.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeleteAccount removes an account; blocked when children or entries exist.
	DeleteAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
