package repositories

import (
	"context"
	"time"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// LedgerRepository provides the aggregation queries behind the balance
// computation engine. All methods aggregate journal entries joined to their
// journals, honoring the scope filter, in single-pass SQL.
type LedgerRepository interface {
	// SumEntries returns native and primary-currency debit/credit totals for
	// each of the given accounts over entries whose journal date <= asOf.
	// When filter.CurrencyCode is set, the entry set is scoped to that
	// currency and both aggregates cover the scoped set. Both come from the
	// same query round-trip.
	SumEntries(ctx context.Context, accountIDs []string, asOf time.Time, filter domain.BalanceFilter) (map[string]domain.EntrySums, error)

	// SumEntriesByPeriod returns, for each account, totals before from
	// (opening side) and totals within [from, to] (movement side), computed in
	// one pass with conditional aggregation.
	SumEntriesByPeriod(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) (map[string]domain.PeriodSums, error)

	// ListEntriesInRange returns dated entry rows for the given accounts
	// within [from, to], ordered by journal date then journal number, for
	// general ledger style reports.
	ListEntriesInRange(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) ([]domain.GeneralLedgerRow, error)

	// SumEntriesByCurrency returns native and primary-currency totals grouped
	// by transaction currency over entries whose journal date <= asOf. All
	// currencies come back from the one query round-trip.
	SumEntriesByCurrency(ctx context.Context, accountIDs []string, asOf time.Time, filter domain.BalanceFilter) (map[string]domain.CurrencyEntrySums, error)

	// SumEntriesByPeriodAndCurrency returns opening-side and in-period totals
	// grouped by transaction currency, computed in one pass with conditional
	// aggregation.
	SumEntriesByPeriodAndCurrency(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) (map[string]domain.CurrencyPeriodSums, error)
}
