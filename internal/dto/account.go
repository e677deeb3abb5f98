package dto

import (
	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE KAS_BANK"`
	BalanceType     domain.BalanceType `json:"balanceType" binding:"required,oneof=DEBIT CREDIT"`
	IsParent        bool               `json:"isParent"`
	ParentAccountID string             `json:"parentAccountID"`
	Description     string             `json:"description"`
	CompanyIDs      []string           `json:"companyIDs" binding:"required,min=1"`
	CurrencyCodes   []string           `json:"currencyCodes"`
}

// UpdateAccountRequest defines the payload for updating an account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name            *string             `json:"name"`
	Description     *string             `json:"description"`
	ParentAccountID *string             `json:"parentAccountID"`
	BalanceType     *domain.BalanceType `json:"balanceType" binding:"omitempty,oneof=DEBIT CREDIT"`
	IsActive        *bool               `json:"isActive"`
	CompanyIDs      []string            `json:"companyIDs"`
	CurrencyCodes   []string            `json:"currencyCodes"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	BalanceType     string          `json:"balanceType"`
	IsParent        bool            `json:"isParent"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Description     string          `json:"description,omitempty"`
	IsActive        bool            `json:"isActive"`
	CompanyIDs      []string        `json:"companyIDs"`
	CurrencyCodes   []string        `json:"currencyCodes"`
	Balance         decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		BalanceType:     string(a.BalanceType),
		IsParent:        a.IsParent,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		CompanyIDs:      a.CompanyIDs,
		CurrencyCodes:   a.CurrencyCodes,
		Balance:         a.Balance,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
