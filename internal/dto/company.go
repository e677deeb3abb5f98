package dto

import "github.com/reflyh2/accounting-sub001/internal/core/domain"

// CreateCompanyRequest defines the payload for adding a company.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBranchRequest defines the payload for adding a branch.
type CreateBranchRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID  string `json:"branchID"`
	CompanyID string `json:"companyID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{CompanyID: c.CompanyID, Name: c.Name}
}

// ToBranchResponse converts a domain.Branch to BranchResponse DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{BranchID: b.BranchID, CompanyID: b.CompanyID, Code: b.Code, Name: b.Name}
}
