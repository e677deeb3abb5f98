package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
)

// companyService provides company and branch management.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompany retrieves a company by ID.
func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	return company, nil
}

// ListCompanies retrieves all companies.
func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// CreateCompany adds a new company.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	return &company, nil
}

// DeleteCompany removes a company. Deletion is blocked while branches or
// accounts still reference it.
func (s *companyService) DeleteCompany(ctx context.Context, companyID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return fmt.Errorf("failed to find company %s: %w", companyID, err)
	}

	hasDependents, err := s.companyRepo.CompanyHasDependents(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to check company dependents: %w", err)
	}
	if hasDependents {
		return fmt.Errorf("%w: company %s has branches or accounts", apperrors.ErrDeletionBlocked, companyID)
	}

	if err := s.companyRepo.DeleteCompany(ctx, companyID); err != nil {
		logger.Error("Failed to delete company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return fmt.Errorf("failed to delete company: %w", err)
	}

	logger.Info("Company deleted", slog.String("company_id", companyID), slog.String("deleted_by", requestingUserID))
	return nil
}

// GetBranch retrieves a branch by ID.
func (s *companyService) GetBranch(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.companyRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find branch %s: %w", branchID, err)
	}
	return branch, nil
}

// ListBranches retrieves branches, optionally scoped to one company.
func (s *companyService) ListBranches(ctx context.Context, companyID *string) ([]domain.Branch, error) {
	branches, err := s.companyRepo.ListBranches(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// CreateBranch adds a new branch under an existing company.
func (s *companyService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", req.CompanyID, err)
	}

	now := time.Now().UTC()
	branch := domain.Branch{
		BranchID:  uuid.NewString(),
		CompanyID: req.CompanyID,
		Code:      req.Code,
		Name:      req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveBranch(ctx, branch); err != nil {
		logger.Error("Failed to save branch", slog.String("error", err.Error()), slog.String("company_id", req.CompanyID))
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}
	return &branch, nil
}
