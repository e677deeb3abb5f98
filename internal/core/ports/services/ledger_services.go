package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// LedgerSvcFacade is the balance computation engine. Balances roll parent
// accounts up over all descendants and apply the account's sign convention;
// every report consumes balances through this interface.
type LedgerSvcFacade interface {
	// Balance returns the signed primary-currency balance of the account as
	// of the given date (inclusive), within the filter scope.
	Balance(ctx context.Context, accountID string, asOf time.Time, filter domain.BalanceFilter) (decimal.Decimal, error)

	// OpeningBalance returns the balance as of the day before from.
	OpeningBalance(ctx context.Context, accountID string, from time.Time, filter domain.BalanceFilter) (decimal.Decimal, error)

	// CurrencyBalances returns, per currency held by the account, the native
	// balance and its primary-currency equivalent as of the date. Both
	// aggregates come from the same entry set without a second round-trip.
	CurrencyBalances(ctx context.Context, accountID string, asOf time.Time, filter domain.BalanceFilter) ([]domain.CurrencyBalance, error)

	// PeriodBalances computes opening, movement, and ending for N accounts
	// over [from, to] in one query pass.
	PeriodBalances(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) (map[string]domain.AccountPeriodBalance, error)

	// VerifyStoredBalance recomputes the account's balance from its own
	// entries (no descendant rollup, no scope filter) and compares it to the
	// denormalized balance persisted on the account row. The comparison is
	// made as of now since the stored balance is an all-time running total.
	VerifyStoredBalance(ctx context.Context, accountID string) (domain.BalanceCheck, error)
}
