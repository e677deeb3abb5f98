package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	"github.com/reflyh2/accounting-sub001/internal/models"
	"github.com/reflyh2/accounting-sub001/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company and branch data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT company_id, name, created_at, created_by, last_updated_at, last_updated_by FROM companies WHERE company_id = $1;`

	var m models.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}

	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListCompanies retrieves all companies ordered by name.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT company_id, name, created_at, created_by, last_updated_at, last_updated_by FROM companies ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var m models.Company
		if err := rows.Scan(&m.CompanyID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}

// FindBranchByID retrieves a branch by its ID.
func (r *PgxCompanyRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `SELECT branch_id, company_id, code, name, created_at, created_by, last_updated_at, last_updated_by FROM branches WHERE branch_id = $1;`

	var m models.Branch
	err := r.Pool.QueryRow(ctx, query, branchID).Scan(
		&m.BranchID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find branch "+branchID, err)
	}

	branch := mapping.ToDomainBranch(m)
	return &branch, nil
}

// ListBranches retrieves branches ordered by code, optionally scoped to one company.
func (r *PgxCompanyRepository) ListBranches(ctx context.Context, companyID *string) ([]domain.Branch, error) {
	query := `SELECT branch_id, company_id, code, name, created_at, created_by, last_updated_at, last_updated_by FROM branches`
	args := []interface{}{}
	if companyID != nil {
		query += ` WHERE company_id = $1`
		args = append(args, *companyID)
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches", err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		var m models.Branch
		if err := rows.Scan(&m.BranchID, &m.CompanyID, &m.Code, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan branch row", err)
		}
		branches = append(branches, mapping.ToDomainBranch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating branch rows", err)
	}
	return branches, nil
}

// CompanyHasDependents reports whether the company owns branches or is
// referenced by account pivots.
func (r *PgxCompanyRepository) CompanyHasDependents(ctx context.Context, companyID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM branches WHERE company_id = $1)
			OR EXISTS (SELECT 1 FROM account_companies WHERE company_id = $1);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check dependents for company "+companyID, err)
	}
	return exists, nil
}

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)

	query := `
		INSERT INTO companies (company_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.CompanyID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: company %s already exists", apperrors.ErrDuplicate, m.CompanyID)
		}
		return fmt.Errorf("failed to save company %s: %w", m.CompanyID, err)
	}
	return nil
}

// SaveBranch inserts a new branch.
func (r *PgxCompanyRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)

	query := `
		INSERT INTO branches (branch_id, company_id, code, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.BranchID, m.CompanyID, m.Code, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: branch code %s already in use", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save branch %s: %w", m.BranchID, err)
	}
	return nil
}

// DeleteCompany removes a company.
func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1;`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete company %s: %w", companyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return nil
}
