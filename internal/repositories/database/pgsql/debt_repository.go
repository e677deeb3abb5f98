package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	"github.com/reflyh2/accounting-sub001/internal/models"
	"github.com/reflyh2/accounting-sub001/internal/utils/mapping"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt document data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepositoryFacade
var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, company_id, branch_id, debt_type, number, contact_name, issue_date, due_date, amount, currency_code, exchange_rate, created_at, created_by, last_updated_at, last_updated_by`

func scanDebt(row pgx.Row) (models.ExternalDebt, error) {
	var m models.ExternalDebt
	err := row.Scan(
		&m.DebtID,
		&m.CompanyID,
		&m.BranchID,
		&m.DebtType,
		&m.Number,
		&m.ContactName,
		&m.IssueDate,
		&m.DueDate,
		&m.Amount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindDebtByID retrieves a debt document by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.ExternalDebt, error) {
	query := `SELECT ` + debtColumns + ` FROM external_debts WHERE debt_id = $1;`

	m, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt "+debtID, err)
	}

	debt := mapping.ToDomainDebt(m)
	return &debt, nil
}

// ListDebts retrieves debt documents of one type issued on or before the given
// date, honoring company/branch scope, ordered by due date.
func (r *PgxDebtRepository) ListDebts(ctx context.Context, debtType domain.DebtType, issuedOnOrBefore time.Time, filter domain.BalanceFilter) ([]domain.ExternalDebt, error) {
	args := []interface{}{string(debtType), issuedOnOrBefore}
	query := `SELECT ` + debtColumns + ` FROM external_debts WHERE debt_type = $1 AND issue_date <= $2`

	if len(filter.BranchIDs) > 0 {
		args = append(args, filter.BranchIDs)
		query += ` AND branch_id = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if len(filter.CompanyIDs) > 0 {
		args = append(args, filter.CompanyIDs)
		query += ` AND company_id = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	query += ` ORDER BY due_date, number;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts", err)
	}
	defer rows.Close()

	debts := []domain.ExternalDebt{}
	for rows.Next() {
		m, err := scanDebt(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt row", err)
		}
		debts = append(debts, mapping.ToDomainDebt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt rows", err)
	}
	return debts, nil
}

// ListPaymentsByDebtIDs retrieves all payments applied to the given debts,
// grouped by debt ID.
func (r *PgxDebtRepository) ListPaymentsByDebtIDs(ctx context.Context, debtIDs []string) (map[string][]domain.DebtPayment, error) {
	if len(debtIDs) == 0 {
		return map[string][]domain.DebtPayment{}, nil
	}

	query := `
		SELECT payment_id, debt_id, amount, method, payment_date, withdrawal_date, created_at, created_by, last_updated_at, last_updated_by
		FROM debt_payments
		WHERE debt_id = ANY($1)
		ORDER BY debt_id, payment_date;
	`
	rows, err := r.Pool.Query(ctx, query, debtIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debt payments", err)
	}
	defer rows.Close()

	paymentsMap := make(map[string][]domain.DebtPayment)
	for rows.Next() {
		var m models.DebtPayment
		if err := rows.Scan(
			&m.PaymentID,
			&m.DebtID,
			&m.Amount,
			&m.Method,
			&m.PaymentDate,
			&m.WithdrawalDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payment := mapping.ToDomainPayment(m)
		paymentsMap[payment.DebtID] = append(paymentsMap[payment.DebtID], payment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return paymentsMap, nil
}

// SaveDebt inserts a new debt document.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.ExternalDebt) error {
	m := mapping.ToModelDebt(debt)

	query := `
		INSERT INTO external_debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DebtID,
		m.CompanyID,
		m.BranchID,
		m.DebtType,
		m.Number,
		m.ContactName,
		m.IssueDate,
		m.DueDate,
		m.Amount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: debt number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to save debt %s: %w", m.DebtID, err)
	}
	return nil
}

// SavePayment inserts a new payment row.
func (r *PgxDebtRepository) SavePayment(ctx context.Context, payment domain.DebtPayment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO debt_payments (payment_id, debt_id, amount, method, payment_date, withdrawal_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.DebtID,
		m.Amount,
		m.Method,
		m.PaymentDate,
		m.WithdrawalDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}
