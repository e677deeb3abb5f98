package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	"github.com/reflyh2/accounting-sub001/internal/models"
	"github.com/reflyh2/accounting-sub001/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, balance_type, is_parent, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by, balance`

// scanAccount scans one account row in accountColumns order.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.BalanceType,
		&m.IsParent,
		&parentID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Balance,
	)
	if err != nil {
		return m, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

// SaveAccount inserts a new account with its company/currency pivot rows in
// one transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	_, err = tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.BalanceType,
		modelAcc.IsParent,
		parentID,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
		modelAcc.Balance,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, modelAcc.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}

	if err := r.replacePivotsInTx(ctx, tx, account.AccountID, account.CompanyIDs, account.CurrencyCodes); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateAccount updates mutable account fields and replaces the pivot rows.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts
		SET code = $2,
		    name = $3,
		    account_type = $4,
		    balance_type = $5,
		    is_parent = $6,
		    parent_account_id = $7,
		    description = $8,
		    is_active = $9,
		    last_updated_at = $10,
		    last_updated_by = $11
		WHERE account_id = $1;
	`
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	cmdTag, err := tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.BalanceType,
		modelAcc.IsParent,
		parentID,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, modelAcc.Code)
		}
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, modelAcc.AccountID)
	}

	if err := r.replacePivotsInTx(ctx, tx, account.AccountID, account.CompanyIDs, account.CurrencyCodes); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// replacePivotsInTx rewrites the account_companies and account_currencies
// pivot rows for the account.
func (r *PgxAccountRepository) replacePivotsInTx(ctx context.Context, tx pgx.Tx, accountID string, companyIDs, currencyCodes []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM account_companies WHERE account_id = $1;`, accountID); err != nil {
		return fmt.Errorf("failed to clear company pivots for account %s: %w", accountID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM account_currencies WHERE account_id = $1;`, accountID); err != nil {
		return fmt.Errorf("failed to clear currency pivots for account %s: %w", accountID, err)
	}

	batch := &pgx.Batch{}
	for _, companyID := range companyIDs {
		batch.Queue(`INSERT INTO account_companies (account_id, company_id) VALUES ($1, $2);`, accountID, companyID)
	}
	for _, code := range currencyCodes {
		batch.Queue(`INSERT INTO account_currencies (account_id, currency_code) VALUES ($1, $2);`, accountID, code)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert pivots for account %s: %w", accountID, err)
	}
	return nil
}

// DeleteAccount removes an account. Pivot rows cascade via FK constraints.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// FindAccountByID retrieves a single account including its pivot scoping.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	if err := r.attachPivots(ctx, map[string]*domain.Account{account.AccountID: &account}); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		account := mapping.ToDomainAccount(m)
		byID[account.AccountID] = &account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	if err := r.attachPivots(ctx, byID); err != nil {
		return nil, err
	}

	result := make(map[string]domain.Account, len(byID))
	for id, account := range byID {
		result[id] = *account
	}
	return result, nil
}

// ListAccounts retrieves accounts ordered by code, optionally scoped to the
// accounts visible to one company.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID *string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	args := []interface{}{}
	if companyID != nil {
		query += ` WHERE account_id IN (SELECT account_id FROM account_companies WHERE company_id = $1)`
		args = append(args, *companyID)
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Account)
	ordered := make([]string, 0, 64)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		account := mapping.ToDomainAccount(m)
		byID[account.AccountID] = &account
		ordered = append(ordered, account.AccountID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	if err := r.attachPivots(ctx, byID); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, len(ordered))
	for i, id := range ordered {
		accounts[i] = *byID[id]
	}
	return accounts, nil
}

// attachPivots loads company and currency scoping for the given accounts in
// two batched queries.
func (r *PgxAccountRepository) attachPivots(ctx context.Context, byID map[string]*domain.Account) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.Pool.Query(ctx, `SELECT account_id, company_id FROM account_companies WHERE account_id = ANY($1) ORDER BY company_id;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query account company pivots", err)
	}
	defer rows.Close()
	for rows.Next() {
		var accountID, companyID string
		if err := rows.Scan(&accountID, &companyID); err != nil {
			return apperrors.NewAppError(500, "failed to scan company pivot row", err)
		}
		byID[accountID].CompanyIDs = append(byID[accountID].CompanyIDs, companyID)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating company pivot rows", err)
	}

	curRows, err := r.Pool.Query(ctx, `SELECT account_id, currency_code FROM account_currencies WHERE account_id = ANY($1) ORDER BY currency_code;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query account currency pivots", err)
	}
	defer curRows.Close()
	for curRows.Next() {
		var accountID, code string
		if err := curRows.Scan(&accountID, &code); err != nil {
			return apperrors.NewAppError(500, "failed to scan currency pivot row", err)
		}
		byID[accountID].CurrencyCodes = append(byID[accountID].CurrencyCodes, code)
	}
	if err := curRows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating currency pivot rows", err)
	}
	return nil
}

// HasJournalEntries reports whether any journal entry references the account.
func (r *PgxAccountRepository) HasJournalEntries(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal entries for account "+accountID, err)
	}
	return exists, nil
}

// HasChildren reports whether any account references this one as parent.
func (r *PgxAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE parent_account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check children for account "+accountID, err)
	}
	return exists, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas to the locked account
// rows within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
