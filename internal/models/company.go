package models

// Company is the relational shape of a company row.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	AuditFields
}

// Branch is the relational shape of a branch row.
type Branch struct {
	BranchID  string `db:"branch_id"`
	CompanyID string `db:"company_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	AuditFields
}
