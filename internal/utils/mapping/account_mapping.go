package mapping

import (
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/models"
)

// ToModelAccount converts a domain Account to its relational shape.
// Company/currency pivots are persisted separately.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		BalanceType:     models.BalanceType(d.BalanceType),
		IsParent:        d.IsParent,
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		Balance:         d.Balance,
	}
}

// ToDomainAccount converts a model Account back to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		BalanceType:     domain.BalanceType(m.BalanceType),
		IsParent:        m.IsParent,
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		Balance:         m.Balance,
	}
}
