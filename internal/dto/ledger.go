package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// BalanceParams parameterizes a point-in-time balance query.
type BalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
	ScopeParams
}

// PeriodBalanceParams parameterizes an opening/movement/ending query.
type PeriodBalanceParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	ScopeParams
}

// BalanceResponse is a signed primary-currency balance at a cutoff date.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}

// CurrencyBalanceResponse is an account's balance in one currency with its
// primary-currency equivalent.
type CurrencyBalanceResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Native       decimal.Decimal `json:"native"`
	Primary      decimal.Decimal `json:"primary"`
}

// CurrencyBalancesResponse groups per-currency balances for one account.
type CurrencyBalancesResponse struct {
	AccountID string                    `json:"accountID"`
	AsOf      time.Time                 `json:"asOf"`
	Balances  []CurrencyBalanceResponse `json:"balances"`
}

// PeriodBalanceResponse is the opening, movement, and ending balance of one
// account over a reporting period.
type PeriodBalanceResponse struct {
	AccountID string          `json:"accountID"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Opening   decimal.Decimal `json:"opening"`
	Movement  decimal.Decimal `json:"movement"`
	Ending    decimal.Decimal `json:"ending"`
}

// BalanceCheckResponse reports whether an account's persisted balance matches
// the balance recomputed from its journal entries.
type BalanceCheckResponse struct {
	AccountID  string          `json:"accountID"`
	Stored     decimal.Decimal `json:"stored"`
	Computed   decimal.Decimal `json:"computed"`
	Consistent bool            `json:"consistent"`
}

// ToBalanceCheckResponse converts a domain balance check to the DTO.
func ToBalanceCheckResponse(check domain.BalanceCheck) BalanceCheckResponse {
	return BalanceCheckResponse{
		AccountID:  check.AccountID,
		Stored:     check.Stored,
		Computed:   check.Computed,
		Consistent: check.Consistent,
	}
}

// ToCurrencyBalancesResponse converts service currency balances to the DTO.
func ToCurrencyBalancesResponse(accountID string, asOf time.Time, balances []domain.CurrencyBalance) CurrencyBalancesResponse {
	out := CurrencyBalancesResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Balances:  make([]CurrencyBalanceResponse, len(balances)),
	}
	for i, b := range balances {
		out.Balances[i] = CurrencyBalanceResponse{
			CurrencyCode: b.CurrencyCode,
			Native:       b.Native,
			Primary:      b.Primary,
		}
	}
	return out
}
