package services

import (
	"context"
	"fmt"
	"log/slog"
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

// accountService manages the chart of accounts: CRUD, the parent/child
// hierarchy, and the integrity rules around it.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent account %s: %w", req.ParentAccountID, err)
		}
		if !parent.IsParent {
			return nil, fmt.Errorf("%w: account %s is not a parent account", apperrors.ErrValidation, req.ParentAccountID)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		BalanceType:     req.BalanceType,
		IsParent:        req.IsParent,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		CompanyIDs:      req.CompanyIDs,
		CurrencyCodes:   req.CurrencyCodes,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves every account, optionally scoped to a company.
func (s *accountService) ListAccounts(ctx context.Context, companyID *string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DescendantAccountIDs resolves the given account plus all transitive
// children via the in-memory account tree. Hierarchy cycles are a
// data-integrity failure and abort the traversal.
func (s *accountService) DescendantAccountIDs(ctx context.Context, accountID string) ([]string, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsParent {
		return []string{accountID}, nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for hierarchy resolution: %w", err)
	}

	tree := domain.NewAccountTree(accounts)
	ids, err := tree.DescendantIDs(accountID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Account hierarchy integrity violation", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}
	return ids, nil
}

// UpdateAccount applies mutable changes. Balance type is immutable once
// journal entries exist against the account; parent changes are cycle-checked
// before being written.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.BalanceType != nil && *req.BalanceType != account.BalanceType {
		hasEntries, err := s.accountRepo.HasJournalEntries(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check entries for account %s: %w", accountID, err)
		}
		if hasEntries {
			// Flipping the sign convention would corrupt historical reports.
			return nil, fmt.Errorf("%w: balance type of account %s with posted entries", apperrors.ErrImmutableFieldChanged, accountID)
		}
		account.BalanceType = *req.BalanceType
	}

	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		if *req.ParentAccountID != "" {
			accounts, err := s.accountRepo.ListAccounts(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to list accounts for cycle check: %w", err)
			}
			tree := domain.NewAccountTree(accounts)
			if tree.WouldCreateCycle(accountID, *req.ParentAccountID) {
				logger.Error("Rejected parent change that would create a cycle", slog.String("account_id", accountID), slog.String("new_parent_id", *req.ParentAccountID))
				return nil, fmt.Errorf("%w: re-parenting %s under %s", apperrors.ErrAccountHierarchyCycle, accountID, *req.ParentAccountID)
			}
		}
		account.ParentAccountID = *req.ParentAccountID
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.CompanyIDs != nil {
		account.CompanyIDs = req.CompanyIDs
	}
	if req.CurrencyCodes != nil {
		account.CurrencyCodes = req.CurrencyCodes
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account. Deletion is blocked when the account has
// children or journal entries.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check children of account %s: %w", accountID, err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has child accounts", apperrors.ErrDeletionBlocked, accountID)
	}

	hasEntries, err := s.accountRepo.HasJournalEntries(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check entries of account %s: %w", accountID, err)
	}
	if hasEntries {
		return fmt.Errorf("%w: account %s has journal entries", apperrors.ErrDeletionBlocked, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("deleted_by", requestingUserID))
	return nil
}
