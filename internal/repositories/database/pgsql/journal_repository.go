package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	"github.com/reflyh2/accounting-sub001/internal/models"
	"github.com/reflyh2/accounting-sub001/internal/utils/mapping"
	"github.com/reflyh2/accounting-sub001/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal and entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// journalTypePrefixes maps journal types to the short code used in journal numbers.
var journalTypePrefixes = map[string]string{
	string(domain.GeneralJournal): "GJ",
	string(domain.CashReceipt):    "CR",
	string(domain.CashPayment):    "CP",
}

// nextJournalNumberInTx claims the next sequence value for branch+type+year
// with an atomic upsert and formats the journal number. Concurrent posters
// serialize on the sequence row, never on an app-side max()+1.
func (r *PgxJournalRepository) nextJournalNumberInTx(ctx context.Context, tx pgx.Tx, branchID, journalType string, year int) (string, error) {
	var branchCode string
	if err := tx.QueryRow(ctx, `SELECT code FROM branches WHERE branch_id = $1;`, branchID).Scan(&branchCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return "", fmt.Errorf("failed to resolve branch code for %s: %w", branchID, err)
	}

	seqQuery := `
		INSERT INTO journal_sequences (branch_id, journal_type, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (branch_id, journal_type, year)
		DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, seqQuery, branchID, journalType, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to claim journal sequence for branch %s: %w", branchID, err)
	}

	prefix, ok := journalTypePrefixes[journalType]
	if !ok {
		prefix = "GJ"
	}
	return fmt.Sprintf("%s/%s/%d/%05d", prefix, branchCode, year, seq), nil
}

// insertJournalInTx inserts the journal header row.
func (r *PgxJournalRepository) insertJournalInTx(ctx context.Context, tx pgx.Tx, modelJournal models.Journal) error {
	query := `
		INSERT INTO journals (
			journal_id, branch_id, journal_type, journal_date, journal_number,
			reference_number, description, status, original_journal_id, reversing_journal_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		modelJournal.JournalID,
		modelJournal.BranchID,
		modelJournal.JournalType,
		modelJournal.JournalDate,
		modelJournal.JournalNumber,
		modelJournal.ReferenceNumber,
		modelJournal.Description,
		modelJournal.Status,
		modelJournal.OriginalJournalID,
		modelJournal.ReversingJournalID,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}
	return nil
}

// insertEntriesInTx inserts journal entry rows as one batch.
func (r *PgxJournalRepository) insertEntriesInTx(ctx context.Context, tx pgx.Tx, journalID string, entries []domain.JournalEntry) error {
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, journal_id, account_id, debit, credit, currency_code, exchange_rate,
			primary_currency_debit, primary_currency_credit, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelJournalEntry(entry)
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.JournalID,
			modelEntry.AccountID,
			modelEntry.Debit,
			modelEntry.Credit,
			modelEntry.CurrencyCode,
			modelEntry.ExchangeRate,
			modelEntry.PrimaryCurrencyDebit,
			modelEntry.PrimaryCurrencyCredit,
			modelEntry.Notes,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for journal "+journalID, err)
	}
	return nil
}

// applyBalanceChangesInTx locks the affected accounts and applies the signed
// deltas to their persisted balances.
func (r *PgxJournalRepository) applyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// SaveJournal persists a journal and its entries atomically. The journal
// number is claimed inside the same transaction as the inserts and balance
// updates; the assigned number is written back to the passed journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal *domain.Journal, entries []domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.nextJournalNumberInTx(ctx, tx, journal.BranchID, string(journal.JournalType), journal.FiscalYear())
	if err != nil {
		return err
	}
	journal.JournalNumber = number

	if err := r.insertJournalInTx(ctx, tx, mapping.ToModelJournal(*journal)); err != nil {
		return err
	}

	if err := r.applyBalanceChangesInTx(ctx, tx, balanceChanges, journal.CreatedBy, journal.CreatedAt); err != nil {
		return err
	}

	if err := r.insertEntriesInTx(ctx, tx, journal.JournalID, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceJournal updates the journal header and swaps out all entries in one
// transaction. Entries are deleted and recreated wholesale, never patched.
func (r *PgxJournalRepository) ReplaceJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelJournal := mapping.ToModelJournal(journal)
	headerQuery := `
		UPDATE journals
		SET journal_date = $2,
		    reference_number = $3,
		    description = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		modelJournal.JournalID,
		modelJournal.JournalDate,
		modelJournal.ReferenceNumber,
		modelJournal.Description,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+modelJournal.JournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, modelJournal.JournalID)
	}

	if err := r.applyBalanceChangesInTx(ctx, tx, balanceChanges, journal.LastUpdatedBy, journal.LastUpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_id = $1;`, journal.JournalID); err != nil {
		return apperrors.NewAppError(500, "failed to clear entries for journal "+journal.JournalID, err)
	}

	if err := r.insertEntriesInTx(ctx, tx, journal.JournalID, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteJournal removes a journal and its entries in one transaction,
// reversing its balance effect.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string, balanceChanges map[string]decimal.Decimal, deletedBy string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyBalanceChangesInTx(ctx, tx, balanceChanges, deletedBy, deletedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for journal "+journalID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}

	return r.Commit(ctx, tx)
}

// UpdateJournalStatusAndLinks updates the status and reversal links for a journal.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $2,
		    reversing_journal_id = COALESCE($3, reversing_journal_id),
		    original_journal_id = COALESCE($4, original_journal_id),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		journalID,
		status,
		reversingJournalID,
		originalJournalID,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal status/links for "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}
	return nil
}

const journalColumns = `journal_id, branch_id, journal_type, journal_date, journal_number, reference_number, description, status, original_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

// scanJournal scans one journal row in journalColumns order.
func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	var originalID, reversingID sql.NullString
	err := row.Scan(
		&m.JournalID,
		&m.BranchID,
		&m.JournalType,
		&m.JournalDate,
		&m.JournalNumber,
		&m.ReferenceNumber,
		&m.Description,
		&m.Status,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if originalID.Valid {
		m.OriginalJournalID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingJournalID = &reversingID.String
	}
	return m, nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves a paginated list of journals for a branch using
// token-based cursor pagination ordered by journal_date DESC, created_at DESC.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, branchID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`
	filterClause := `WHERE branch_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_journal_id IS NULL`
	}
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{branchID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for branch "+branchID, err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for branch "+branchID, scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for branch "+branchID, err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		lastJournal := modelJournals[limit-1]
		newToken := pagination.EncodeToken(lastJournal.JournalDate, lastJournal.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}
	return domainJournals, nextTokenVal, nil
}

const entryColumns = `entry_id, journal_id, account_id, debit, credit, currency_code, exchange_rate, primary_currency_debit, primary_currency_credit, notes, created_at, created_by, last_updated_at, last_updated_by`

// scanEntry scans one journal entry row in entryColumns order.
func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.JournalID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.PrimaryCurrencyDebit,
		&m.PrimaryCurrencyCredit,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntriesByJournalID retrieves all entries of a single journal.
func (r *PgxJournalRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE journal_id = $1 ORDER BY entry_id;`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for journal "+journalID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for journal "+journalID, err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for journal "+journalID, err)
	}
	return entries, nil
}

// FindEntriesByJournalIDs retrieves entries for multiple journals, grouped by
// journal ID. Journals without entries still get an empty slice.
func (r *PgxJournalRepository) FindEntriesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntry, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalEntry{}, nil
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE journal_id = ANY($1) ORDER BY journal_id, entry_id;`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for journal IDs", err)
	}
	defer rows.Close()

	entriesMap := make(map[string][]domain.JournalEntry)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row during batch fetch", err)
		}
		entry := mapping.ToDomainJournalEntry(m)
		entriesMap[entry.JournalID] = append(entriesMap[entry.JournalID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows during batch fetch", err)
	}

	for _, jid := range journalIDs {
		if _, exists := entriesMap[jid]; !exists {
			entriesMap[jid] = []domain.JournalEntry{}
		}
	}
	return entriesMap, nil
}
