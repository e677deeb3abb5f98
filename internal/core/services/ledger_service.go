package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/utils/accounting"
)

// ledgerService is the balance computation engine. Balances are always
// derived from journal entry aggregation, with the account's sign convention
// applied last; parent accounts roll up over all their descendants.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepository
	accountSvc portssvc.AccountSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountSvc portssvc.AccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountSvc: accountSvc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Balance returns the signed primary-currency balance of the account as of
// the given date, aggregated over the account and all its descendants.
func (s *ledgerService) Balance(ctx context.Context, accountID string, asOf time.Time, filter domain.BalanceFilter) (decimal.Decimal, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	ids, err := s.accountSvc.DescendantAccountIDs(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	sums, err := s.ledgerRepo.SumEntries(ctx, ids, asOf, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate entries for account %s: %w", accountID, err)
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, sum := range sums {
		debit = debit.Add(sum.PrimaryDebit)
		credit = credit.Add(sum.PrimaryCredit)
	}
	return accounting.SignedNet(account.BalanceType, debit, credit), nil
}

// OpeningBalance returns the balance as of the day before from.
func (s *ledgerService) OpeningBalance(ctx context.Context, accountID string, from time.Time, filter domain.BalanceFilter) (decimal.Decimal, error) {
	return s.Balance(ctx, accountID, from.AddDate(0, 0, -1), filter)
}

// CurrencyBalances returns the native balance and its primary-currency
// equivalent for every currency the account holds entries in, as of the date.
func (s *ledgerService) CurrencyBalances(ctx context.Context, accountID string, asOf time.Time, filter domain.BalanceFilter) ([]domain.CurrencyBalance, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ids, err := s.accountSvc.DescendantAccountIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sums, err := s.ledgerRepo.SumEntriesByCurrency(ctx, ids, asOf, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries by currency for account %s: %w", accountID, err)
	}

	codes := make([]string, 0, len(sums))
	for code := range sums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	balances := make([]domain.CurrencyBalance, 0, len(codes))
	for _, code := range codes {
		sum := sums[code]
		balances = append(balances, domain.CurrencyBalance{
			CurrencyCode: code,
			Native:       accounting.SignedNet(account.BalanceType, sum.Debit, sum.Credit),
			Primary:      accounting.SignedNet(account.BalanceType, sum.PrimaryDebit, sum.PrimaryCredit),
		})
	}
	return balances, nil
}

// VerifyStoredBalance recomputes the account's balance from its own journal
// entries and compares it to the denormalized balance on the account row.
// Only direct entries count: the stored balance is maintained per posted
// account, so parent accounts legitimately hold zero. The comparison runs
// as of now because the stored balance is an all-time running total.
func (s *ledgerService) VerifyStoredBalance(ctx context.Context, accountID string) (domain.BalanceCheck, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.BalanceCheck{}, err
	}

	sums, err := s.ledgerRepo.SumEntries(ctx, []string{accountID}, time.Now().UTC(), domain.BalanceFilter{})
	if err != nil {
		return domain.BalanceCheck{}, fmt.Errorf("failed to recompute balance for account %s: %w", accountID, err)
	}

	debit, credit := decimal.Zero, decimal.Zero
	if sum, ok := sums[accountID]; ok {
		debit, credit = sum.PrimaryDebit, sum.PrimaryCredit
	}
	computed := accounting.SignedNet(account.BalanceType, debit, credit)

	return domain.BalanceCheck{
		AccountID:  accountID,
		Stored:     account.Balance,
		Computed:   computed,
		Consistent: account.Balance.Equal(computed),
	}, nil
}

// PeriodBalances computes opening, movement, and ending balances for the
// requested accounts over [from, to]. Descendant sums are fetched in a single
// pass over the union of all descendant IDs and folded back into each
// requested account.
func (s *ledgerService) PeriodBalances(ctx context.Context, accountIDs []string, from, to time.Time, filter domain.BalanceFilter) (map[string]domain.AccountPeriodBalance, error) {
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	descendants := make(map[string][]string, len(accountIDs))
	unionSet := make(map[string]struct{})
	union := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		ids, err := s.accountSvc.DescendantAccountIDs(ctx, id)
		if err != nil {
			return nil, err
		}
		descendants[id] = ids
		for _, d := range ids {
			if _, seen := unionSet[d]; !seen {
				unionSet[d] = struct{}{}
				union = append(union, d)
			}
		}
	}

	sums, err := s.ledgerRepo.SumEntriesByPeriod(ctx, union, from, to, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period entries: %w", err)
	}

	result := make(map[string]domain.AccountPeriodBalance, len(accountIDs))
	for _, id := range accountIDs {
		account, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("account %s missing from batch lookup", id)
		}

		var openDebit, openCredit, moveDebit, moveCredit decimal.Decimal
		for _, d := range descendants[id] {
			sum, ok := sums[d]
			if !ok {
				continue
			}
			openDebit = openDebit.Add(sum.OpeningPrimaryDebit)
			openCredit = openCredit.Add(sum.OpeningPrimaryCredit)
			moveDebit = moveDebit.Add(sum.MovementPrimaryDebit)
			moveCredit = moveCredit.Add(sum.MovementPrimaryCredit)
		}

		opening := accounting.SignedNet(account.BalanceType, openDebit, openCredit)
		movement := accounting.SignedNet(account.BalanceType, moveDebit, moveCredit)
		result[id] = domain.AccountPeriodBalance{
			AccountID: id,
			Opening:   opening,
			Movement:  movement,
			Ending:    opening.Add(movement),
		}
	}
	return result, nil
}
