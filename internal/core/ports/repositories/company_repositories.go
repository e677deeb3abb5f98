package repositories

import (
	"context"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// CompanyReader defines read operations for company and branch data
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// FindBranchByID retrieves a branch by its ID.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves branches, optionally scoped to one company.
	ListBranches(ctx context.Context, companyID *string) ([]domain.Branch, error)

	// CompanyHasDependents reports whether the company owns branches or is
	// referenced by accounts, used for the deletion guard.
	CompanyHasDependents(ctx context.Context, companyID string) (bool, error)
}

// CompanyWriter defines write operations for company and branch data
type CompanyWriter interface {
	// SaveCompany inserts a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// SaveBranch inserts a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// DeleteCompany removes a company. Dependent-record guards are enforced
	// by the service before this is called.
	DeleteCompany(ctx context.Context, companyID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
