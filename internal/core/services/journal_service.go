package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
	"github.com/reflyh2/accounting-sub001/internal/utils/accounting"
)

// journalService provides journal posting and lifecycle operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade, companySvc portssvc.CompanySvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
		companySvc:  companySvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildEntries converts entry inputs into domain entries, resolving exchange
// rates from the company rate snapshot when not supplied and precomputing the
// primary-currency amounts that reports will trust.
func (s *journalService) buildEntries(ctx context.Context, companyID, journalID string, date time.Time, inputs []dto.EntryInput, userID string, now time.Time) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, len(inputs))
	for i, in := range inputs {
		rate := decimal.Decimal{}
		if in.ExchangeRate != nil {
			rate = *in.ExchangeRate
		} else {
			resolved, err := s.currencySvc.RateFor(ctx, companyID, in.CurrencyCode, date)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve exchange rate for %s: %w", in.CurrencyCode, err)
			}
			rate = resolved
		}

		entries[i] = domain.JournalEntry{
			EntryID:               uuid.NewString(),
			JournalID:             journalID,
			AccountID:             in.AccountID,
			Debit:                 in.Debit,
			Credit:                in.Credit,
			CurrencyCode:          in.CurrencyCode,
			ExchangeRate:          rate,
			PrimaryCurrencyDebit:  accounting.ToPrimary(in.Debit, rate),
			PrimaryCurrencyCredit: accounting.ToPrimary(in.Credit, rate),
			Notes:                 in.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return entries, nil
}

// resolveAccounts fetches the accounts referenced by the entries, keyed by ID.
func (s *journalService) resolveAccounts(ctx context.Context, entries []domain.JournalEntry) (map[string]domain.Account, error) {
	idSet := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := idSet[e.AccountID]; !ok {
			idSet[e.AccountID] = struct{}{}
			ids = append(ids, e.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		if _, found := accounts[id]; !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// validateAccounts resolves the referenced accounts and rejects lines that
// target parent or inactive accounts. Only new entries go through this; an
// account deactivated after posting must not block edits or deletion of the
// journals that already touched it.
func (s *journalService) validateAccounts(ctx context.Context, entries []domain.JournalEntry) (map[string]domain.Account, error) {
	accounts, err := s.resolveAccounts(ctx, entries)
	if err != nil {
		return nil, err
	}
	for id, acc := range accounts {
		if acc.IsParent {
			return nil, fmt.Errorf("%w: account %s (%s)", apperrors.ErrParentAccountPosting, acc.Code, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return accounts, nil
}

// balanceChanges computes the signed primary-currency delta each entry set
// applies to its accounts.
func balanceChanges(entries []domain.JournalEntry, accounts map[string]domain.Account) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	for _, e := range entries {
		acc := accounts[e.AccountID]
		changes[e.AccountID] = changes[e.AccountID].Add(accounting.SignedAmount(acc.BalanceType, e))
	}
	return changes
}

// negated returns the balance deltas with flipped sign, used when a journal's
// entries are removed.
func negated(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(changes))
	for id, d := range changes {
		out[id] = d.Neg()
	}
	return out
}

// PostJournal validates and persists a new balanced general journal.
// All validation happens before any write; on failure nothing is persisted.
func (s *journalService) PostJournal(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.Journal, error) {
	return s.post(ctx, domain.GeneralJournal, req.BranchID, req.JournalDate, req.ReferenceNumber, req.Description, req.Entries, creatorUserID)
}

func (s *journalService) post(ctx context.Context, journalType domain.JournalType, branchID string, date time.Time, refNumber, description string, inputs []dto.EntryInput, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(inputs) < 2 {
		return nil, fmt.Errorf("%w: journal must have at least two entries", apperrors.ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}

	branch, err := s.companySvc.GetBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branchID, err)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	entries, err := s.buildEntries(ctx, branch.CompanyID, journalID, date, inputs, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	if err := accounting.ValidateEntries(entries); err != nil {
		return nil, err
	}

	accounts, err := s.validateAccounts(ctx, entries)
	if err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:       journalID,
		BranchID:        branchID,
		JournalType:     journalType,
		JournalDate:     date,
		ReferenceNumber: refNumber,
		Description:     description,
		Status:          domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Journal number is assigned inside the repository transaction from the
	// branch+type+year sequence.
	if err := s.journalRepo.SaveJournal(ctx, &journal, entries, balanceChanges(entries, accounts)); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal posted", slog.String("journal_id", journal.JournalID), slog.String("journal_number", journal.JournalNumber))
	journal.Entries = nil
	return &journal, nil
}

// PostCashJournal builds the cash receipt/payment entry shape and posts it:
// each document line becomes one entry, and the kas_bank account receives an
// aggregated counter-entry per transaction currency on the opposite side.
func (s *journalService) PostCashJournal(ctx context.Context, req dto.PostCashJournalRequest, creatorUserID string) (*domain.Journal, error) {
	kasBank, err := s.accountSvc.GetAccountByID(ctx, req.KasBankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve kas_bank account: %w", err)
	}
	if kasBank.AccountType != domain.KasBank {
		return nil, fmt.Errorf("%w: account %s is not a kas_bank account", apperrors.ErrValidation, req.KasBankAccountID)
	}

	// Cash receipts credit the document lines and debit the bank; cash
	// payments are the mirror image.
	lineIsDebit := req.JournalType == domain.CashPayment

	branch, err := s.companySvc.GetBranch(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", req.BranchID, err)
	}

	// The counter-side keeps the lines' transaction currency so the kas_bank
	// account carries native balances: one aggregated counter-entry per
	// currency and rate, balancing exactly against the converted line totals.
	type counterGroup struct {
		currencyCode string
		rate         decimal.Decimal
		amount       decimal.Decimal
	}
	groups := make(map[string]*counterGroup)
	groupOrder := make([]string, 0, len(req.Lines))

	inputs := make([]dto.EntryInput, 0, len(req.Lines)+1)
	for _, line := range req.Lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: cash line amount must be positive for account %s", apperrors.ErrValidation, line.AccountID)
		}

		rate := decimal.Decimal{}
		if line.ExchangeRate != nil {
			rate = *line.ExchangeRate
		} else {
			rate, err = s.currencySvc.RateFor(ctx, branch.CompanyID, line.CurrencyCode, req.JournalDate)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve exchange rate for %s: %w", line.CurrencyCode, err)
			}
		}

		lineRate := rate
		in := dto.EntryInput{
			AccountID:    line.AccountID,
			CurrencyCode: line.CurrencyCode,
			ExchangeRate: &lineRate,
			Notes:        line.Notes,
		}
		if lineIsDebit {
			in.Debit = line.Amount
		} else {
			in.Credit = line.Amount
		}
		inputs = append(inputs, in)

		key := line.CurrencyCode + "@" + rate.String()
		group, seen := groups[key]
		if !seen {
			group = &counterGroup{currencyCode: line.CurrencyCode, rate: rate}
			groups[key] = group
			groupOrder = append(groupOrder, key)
		}
		group.amount = group.amount.Add(line.Amount)
	}

	for _, key := range groupOrder {
		group := groups[key]
		counterRate := group.rate
		counter := dto.EntryInput{
			AccountID:    req.KasBankAccountID,
			CurrencyCode: group.currencyCode,
			ExchangeRate: &counterRate,
		}
		if lineIsDebit {
			counter.Credit = group.amount
		} else {
			counter.Debit = group.amount
		}
		inputs = append(inputs, counter)
	}

	return s.post(ctx, req.JournalType, req.BranchID, req.JournalDate, req.ReferenceNumber, req.Description, inputs, creatorUserID)
}

// GetJournalByID retrieves a journal with its entries.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}
	journal.Entries = entries
	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a branch.
func (s *journalService) ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, branchID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	var entriesMap map[string][]domain.JournalEntry
	if params.IncludeEntries && len(journals) > 0 {
		journalIDs := make([]string, len(journals))
		for i, j := range journals {
			journalIDs[i] = j.JournalID
		}
		entriesMap, err = s.journalRepo.FindEntriesByJournalIDs(ctx, journalIDs)
		if err != nil {
			logger.Warn("Failed to fetch entries for journals", slog.String("error", err.Error()))
			// Continue without entries rather than failing the whole request
		}
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		if entriesMap != nil {
			journals[i].Entries = entriesMap[journals[i].JournalID]
		}
		responses[i] = dto.ToJournalResponse(&journals[i])
	}

	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}

// UpdateJournal replaces a journal's header fields and entries. Edits are
// delete-all-entries-then-recreate inside one transaction, never partial
// mutation. Branch and fiscal year are immutable.
func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s is %s", apperrors.ErrConflict, journalID, journal.Status)
	}
	// A reversal must stay an exact mirror of its original.
	if journal.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: journal %s is a reversal and cannot be edited", apperrors.ErrConflict, journalID)
	}

	if req.JournalDate != nil {
		if req.JournalDate.Year() != journal.FiscalYear() {
			return nil, fmt.Errorf("%w: fiscal year of journal %s", apperrors.ErrImmutableFieldChanged, journalID)
		}
		journal.JournalDate = *req.JournalDate
	}
	if req.ReferenceNumber != nil {
		journal.ReferenceNumber = *req.ReferenceNumber
	}
	if req.Description != nil {
		journal.Description = *req.Description
	}

	now := time.Now().UTC()
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = requestingUserID

	// Old entries' balance effects are reversed; the new set's applied.
	oldEntries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}
	oldAccounts, err := s.resolveAccounts(ctx, oldEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts of existing entries: %w", err)
	}
	changes := negated(balanceChanges(oldEntries, oldAccounts))

	newEntries := oldEntries
	if len(req.Entries) > 0 {
		branch, err := s.companySvc.GetBranch(ctx, journal.BranchID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve branch %s: %w", journal.BranchID, err)
		}
		newEntries, err = s.buildEntries(ctx, branch.CompanyID, journalID, journal.JournalDate, req.Entries, requestingUserID, now)
		if err != nil {
			return nil, err
		}
		if err := accounting.ValidateEntries(newEntries); err != nil {
			return nil, err
		}
		newAccounts, err := s.validateAccounts(ctx, newEntries)
		if err != nil {
			return nil, err
		}
		for id, d := range balanceChanges(newEntries, newAccounts) {
			changes[id] = changes[id].Add(d)
		}
	} else {
		// Header-only update; entries stay, so no balance movement.
		changes = map[string]decimal.Decimal{}
	}

	if err := s.journalRepo.ReplaceJournal(ctx, *journal, newEntries, changes); err != nil {
		logger.Error("Failed to replace journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}

	logger.Info("Journal updated", slog.String("journal_id", journalID))
	journal.Entries = nil
	return journal, nil
}

// DeleteJournal removes a journal and cascades its entries.
func (s *journalService) DeleteJournal(ctx context.Context, journalID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.ReversingJournalID != nil {
		return fmt.Errorf("%w: journal %s has been reversed", apperrors.ErrConflict, journalID)
	}
	// Removing a reversal would leave the original marked REVERSED with a
	// dangling link; the pair stands or falls together.
	if journal.OriginalJournalID != nil {
		return fmt.Errorf("%w: journal %s is a reversal and cannot be deleted", apperrors.ErrConflict, journalID)
	}

	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}
	accounts, err := s.resolveAccounts(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to resolve accounts of entries: %w", err)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.DeleteJournal(ctx, journalID, negated(balanceChanges(entries, accounts)), requestingUserID, now); err != nil {
		logger.Error("Failed to delete journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	return nil
}

// ReverseJournal posts a mirrored journal reversing an existing one and links
// the two.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s is %s, expected POSTED", apperrors.ErrConflict, journalID, original.Status)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}

	originalEntries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}

	now := time.Now().UTC()
	newJournalID := uuid.NewString()

	reversingEntries := make([]domain.JournalEntry, len(originalEntries))
	for i, e := range originalEntries {
		reversingEntries[i] = domain.JournalEntry{
			EntryID:               uuid.NewString(),
			JournalID:             newJournalID,
			AccountID:             e.AccountID,
			Debit:                 e.Credit,
			Credit:                e.Debit,
			CurrencyCode:          e.CurrencyCode,
			ExchangeRate:          e.ExchangeRate,
			PrimaryCurrencyDebit:  e.PrimaryCurrencyCredit,
			PrimaryCurrencyCredit: e.PrimaryCurrencyDebit,
			Notes:                 e.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	// Reversals mirror entries that were already accepted, so the accounts are
	// only resolved, not re-validated for postability.
	accounts, err := s.resolveAccounts(ctx, reversingEntries)
	if err != nil {
		return nil, err
	}

	reversing := domain.Journal{
		JournalID:         newJournalID,
		BranchID:          original.BranchID,
		JournalType:       original.JournalType,
		JournalDate:       original.JournalDate,
		ReferenceNumber:   original.ReferenceNumber,
		Description:       fmt.Sprintf("Reversal of %s: %s", original.JournalNumber, original.Description),
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, &reversing, reversingEntries, balanceChanges(reversingEntries, accounts)); err != nil {
		logger.Error("Failed to save reversing journal", slog.String("error", err.Error()), slog.String("original_journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinks(ctx, original.JournalID, domain.Reversed, &newJournalID, nil, userID, now); err != nil {
		logger.Error("Failed to update original journal status after reversal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update original journal status: %w", err)
	}

	logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversing_journal_id", newJournalID))
	reversing.Entries = nil
	return &reversing, nil
}
