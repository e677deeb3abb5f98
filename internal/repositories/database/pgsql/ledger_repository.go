package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
)

// ledgerRepository implements the aggregation queries behind the balance
// computation engine. Reversed journals and their reversing counterparts both
// stay in the aggregate; their entries cancel exactly.
type ledgerRepository struct {
	BaseRepository
}

// newLedgerRepository creates a new ledger aggregation repository.
func newLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &ledgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

// scopeClauses appends filter conditions for branch, company, and currency
// scope to args and returns the SQL fragments. e is the journal_entries alias,
// j the journals alias.
func scopeClauses(filter domain.BalanceFilter, args []interface{}) ([]string, []interface{}) {
	clauses := []string{}
	if len(filter.BranchIDs) > 0 {
		args = append(args, filter.BranchIDs)
		clauses = append(clauses, "j.branch_id = ANY($"+strconv.Itoa(len(args))+")")
	}
	if len(filter.CompanyIDs) > 0 {
		args = append(args, filter.CompanyIDs)
		clauses = append(clauses, "j.branch_id IN (SELECT branch_id FROM branches WHERE company_id = ANY($"+strconv.Itoa(len(args))+"))")
	}
	if filter.CurrencyCode != nil {
		args = append(args, *filter.CurrencyCode)
		clauses = append(clauses, "e.currency_code = $"+strconv.Itoa(len(args)))
	}
	return clauses, args
}

// SumEntries aggregates native and primary-currency totals per account over
// entries dated on or before asOf, in a single pass.
func (r *ledgerRepository) SumEntries(ctx context.Context, accountIDs []string, asOf time.Time, filter domain.BalanceFilter) (map[string]domain.EntrySums, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.EntrySums{}, nil
	}

	args := []interface{}{accountIDs, asOf}
	query := `
		SELECT
			e.account_id,
			COALESCE(SUM(e.debit), 0) AS debit,
			COALESCE(SUM(e.credit), 0) AS credit,
			COALESCE(SUM(e.primary_currency_debit), 0) AS primary_debit,
			COALESCE(SUM(e.primary_currency_credit), 0) AS primary_credit
		FROM journal_entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE e.account_id = ANY($1)
			AND j.journal_date <= $2`

	clauses, args := scopeClauses(filter, args)
	for _, c := range clauses {
		query += "\n\t\t\tAND " + c
	}
	query += "\n\t\tGROUP BY e.account_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying entry sums: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.EntrySums, len(accountIDs))
	for rows.Next() {
		var s domain.EntrySums
		if err := rows.Scan(&s.AccountID, &s.Debit, &s.Credit, &s.PrimaryDebit, &s.PrimaryCredit); err != nil {
			return nil, fmt.Errorf("error scanning entry sums row: %w", err)
		}
		result[s.AccountID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry sums rows: %w", err)
	}
	return result, nil
}

// SumEntriesByPeriod computes opening-side totals (journal_date < from) and
// in-period totals (from <= journal_date <= to) per account with conditional
// aggregation, one query for the whole batch.
func (r *ledgerRepository) SumEntriesByPeriod(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) (map[string]domain.PeriodSums, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.PeriodSums{}, nil
	}

	args := []interface{}{accountIDs, from, to}
	query := `
		SELECT
			e.account_id,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.debit ELSE 0 END), 0) AS opening_debit,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.credit ELSE 0 END), 0) AS opening_credit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.debit ELSE 0 END), 0) AS movement_debit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.credit ELSE 0 END), 0) AS movement_credit,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.primary_currency_debit ELSE 0 END), 0) AS opening_primary_debit,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.primary_currency_credit ELSE 0 END), 0) AS opening_primary_credit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.primary_currency_debit ELSE 0 END), 0) AS movement_primary_debit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.primary_currency_credit ELSE 0 END), 0) AS movement_primary_credit
		FROM journal_entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE e.account_id = ANY($1)
			AND j.journal_date <= $3`

	clauses, args := scopeClauses(filter, args)
	for _, c := range clauses {
		query += "\n\t\t\tAND " + c
	}
	query += "\n\t\tGROUP BY e.account_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying period sums: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.PeriodSums, len(accountIDs))
	for rows.Next() {
		var s domain.PeriodSums
		if err := rows.Scan(
			&s.AccountID,
			&s.OpeningDebit,
			&s.OpeningCredit,
			&s.MovementDebit,
			&s.MovementCredit,
			&s.OpeningPrimaryDebit,
			&s.OpeningPrimaryCredit,
			&s.MovementPrimaryDebit,
			&s.MovementPrimaryCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning period sums row: %w", err)
		}
		result[s.AccountID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period sums rows: %w", err)
	}
	return result, nil
}

// ListEntriesInRange returns dated entry rows for the accounts within
// [from, to], ordered for general ledger presentation. Primary-currency
// amounts are reported.
func (r *ledgerRepository) ListEntriesInRange(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) ([]domain.GeneralLedgerRow, error) {
	if len(accountIDs) == 0 {
		return []domain.GeneralLedgerRow{}, nil
	}

	args := []interface{}{accountIDs, from, to}
	query := `
		SELECT
			j.journal_id,
			j.journal_number,
			j.journal_date,
			j.description,
			e.primary_currency_debit,
			e.primary_currency_credit
		FROM journal_entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE e.account_id = ANY($1)
			AND j.journal_date >= $2
			AND j.journal_date <= $3`

	clauses, args := scopeClauses(filter, args)
	for _, c := range clauses {
		query += "\n\t\t\tAND " + c
	}
	query += "\n\t\tORDER BY j.journal_date, j.journal_number, e.entry_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying general ledger rows: %w", err)
	}
	defer rows.Close()

	result := []domain.GeneralLedgerRow{}
	for rows.Next() {
		var row domain.GeneralLedgerRow
		if err := rows.Scan(
			&row.JournalID,
			&row.JournalNumber,
			&row.JournalDate,
			&row.Description,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning general ledger row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general ledger rows: %w", err)
	}
	return result, nil
}

// SumEntriesByCurrency aggregates native and primary-currency totals grouped
// by transaction currency over entries dated on or before asOf. One query
// covers every currency the accounts hold entries in.
func (r *ledgerRepository) SumEntriesByCurrency(ctx context.Context, accountIDs []string, asOf time.Time, filter domain.BalanceFilter) (map[string]domain.CurrencyEntrySums, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.CurrencyEntrySums{}, nil
	}

	args := []interface{}{accountIDs, asOf}
	query := `
		SELECT
			e.currency_code,
			COALESCE(SUM(e.debit), 0) AS debit,
			COALESCE(SUM(e.credit), 0) AS credit,
			COALESCE(SUM(e.primary_currency_debit), 0) AS primary_debit,
			COALESCE(SUM(e.primary_currency_credit), 0) AS primary_credit
		FROM journal_entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE e.account_id = ANY($1)
			AND j.journal_date <= $2`

	clauses, args := scopeClauses(filter, args)
	for _, c := range clauses {
		query += "\n\t\t\tAND " + c
	}
	query += "\n\t\tGROUP BY e.currency_code;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying currency entry sums: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.CurrencyEntrySums)
	for rows.Next() {
		var s domain.CurrencyEntrySums
		if err := rows.Scan(&s.CurrencyCode, &s.Debit, &s.Credit, &s.PrimaryDebit, &s.PrimaryCredit); err != nil {
			return nil, fmt.Errorf("error scanning currency entry sums row: %w", err)
		}
		result[s.CurrencyCode] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency entry sums rows: %w", err)
	}
	return result, nil
}

// SumEntriesByPeriodAndCurrency computes opening-side totals (journal_date <
// from) and in-period totals (from <= journal_date <= to) grouped by
// transaction currency, one query for all currencies.
func (r *ledgerRepository) SumEntriesByPeriodAndCurrency(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) (map[string]domain.CurrencyPeriodSums, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.CurrencyPeriodSums{}, nil
	}

	args := []interface{}{accountIDs, from, to}
	query := `
		SELECT
			e.currency_code,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.debit ELSE 0 END), 0) AS opening_debit,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.credit ELSE 0 END), 0) AS opening_credit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.debit ELSE 0 END), 0) AS movement_debit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.credit ELSE 0 END), 0) AS movement_credit,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.primary_currency_debit ELSE 0 END), 0) AS opening_primary_debit,
			COALESCE(SUM(CASE WHEN j.journal_date < $2 THEN e.primary_currency_credit ELSE 0 END), 0) AS opening_primary_credit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.primary_currency_debit ELSE 0 END), 0) AS movement_primary_debit,
			COALESCE(SUM(CASE WHEN j.journal_date >= $2 THEN e.primary_currency_credit ELSE 0 END), 0) AS movement_primary_credit
		FROM journal_entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE e.account_id = ANY($1)
			AND j.journal_date <= $3`

	clauses, args := scopeClauses(filter, args)
	for _, c := range clauses {
		query += "\n\t\t\tAND " + c
	}
	query += "\n\t\tGROUP BY e.currency_code;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying currency period sums: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.CurrencyPeriodSums)
	for rows.Next() {
		var s domain.CurrencyPeriodSums
		if err := rows.Scan(
			&s.CurrencyCode,
			&s.OpeningDebit,
			&s.OpeningCredit,
			&s.MovementDebit,
			&s.MovementCredit,
			&s.OpeningPrimaryDebit,
			&s.OpeningPrimaryCredit,
			&s.MovementPrimaryDebit,
			&s.MovementPrimaryCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning currency period sums row: %w", err)
		}
		result[s.CurrencyCode] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency period sums rows: %w", err)
	}
	return result, nil
}
