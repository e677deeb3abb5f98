package domain

// Company is a legal entity. Accounts may be scoped to multiple companies.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	Name      string `json:"name"`
	AuditFields
}

// Branch is an operating location belonging to a company. Journals are posted
// against a branch; balance queries filter by branch and/or company.
type Branch struct {
	BranchID  string `json:"branchID"`  // Primary Key (UUID)
	CompanyID string `json:"companyID"` // FK -> companies.company_id
	Code      string `json:"code"`      // Short code used in journal numbers
	Name      string `json:"name"`
	AuditFields
}
