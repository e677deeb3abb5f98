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
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/utils/accounting"
)

// reportingService assembles read-only reports on top of the balance engine.
type reportingService struct {
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountReader
	accountSvc  portssvc.AccountSvcFacade
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountReader, accountSvc portssvc.AccountSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		accountSvc:  accountSvc,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GeneralLedger builds, per requested account, an opening balance, dated entry
// rows with a running balance, and the ending balance over the period. Parent
// accounts cover the entries of all their descendants.
func (s *reportingService) GeneralLedger(ctx context.Context, params dto.GeneralLedgerParams) ([]domain.GeneralLedgerAccount, error) {
	filter := params.Filter()

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, params.AccountIDs)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.GeneralLedgerAccount, 0, len(params.AccountIDs))
	for _, accountID := range params.AccountIDs {
		account, found := accounts[accountID]
		if !found {
			return nil, fmt.Errorf("account %s missing from batch lookup", accountID)
		}

		ids, err := s.accountSvc.DescendantAccountIDs(ctx, accountID)
		if err != nil {
			return nil, err
		}

		opening, err := s.ledgerSvc.OpeningBalance(ctx, accountID, params.From, filter)
		if err != nil {
			return nil, err
		}

		rows, err := s.ledgerRepo.ListEntriesInRange(ctx, ids, params.From, params.To, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
		}

		running := opening
		for i := range rows {
			running = running.Add(accounting.SignedNet(account.BalanceType, rows[i].Debit, rows[i].Credit))
			rows[i].RunningBalance = running
		}

		sections = append(sections, domain.GeneralLedgerAccount{
			AccountID:      account.AccountID,
			AccountCode:    account.Code,
			AccountName:    account.Name,
			OpeningBalance: opening,
			Rows:           rows,
			EndingBalance:  running,
		})
	}
	return sections, nil
}

// CashBankBook builds the per-currency book for kas_bank accounts: native
// opening/debit/credit/ending side by side with primary-currency equivalents.
func (s *reportingService) CashBankBook(ctx context.Context, params dto.CashBankBookParams) ([]domain.CashBankBookAccount, error) {
	filter := params.Filter()

	accounts, err := s.kasBankAccounts(ctx, params.AccountIDs, filter)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.CashBankBookAccount, 0, len(accounts))
	for _, account := range accounts {
		ids, err := s.accountSvc.DescendantAccountIDs(ctx, account.AccountID)
		if err != nil {
			return nil, err
		}

		sums, err := s.ledgerRepo.SumEntriesByPeriodAndCurrency(ctx, ids, params.From, params.To, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate entries by currency for account %s: %w", account.AccountID, err)
		}

		codes := make([]string, 0, len(sums))
		for code := range sums {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		section := domain.CashBankBookAccount{
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			AccountName: account.Name,
			Currencies:  make([]domain.CashBankBookCurrency, 0, len(codes)),
		}

		for _, code := range codes {
			sum := sums[code]
			row := domain.CashBankBookCurrency{
				CurrencyCode:  code,
				Opening:       accounting.SignedNet(account.BalanceType, sum.OpeningDebit, sum.OpeningCredit),
				Debit:         sum.MovementDebit,
				Credit:        sum.MovementCredit,
				PrimaryDebit:  sum.MovementPrimaryDebit,
				PrimaryCredit: sum.MovementPrimaryCredit,
			}
			row.Ending = row.Opening.Add(accounting.SignedNet(account.BalanceType, row.Debit, row.Credit))
			row.PrimaryOpening = accounting.SignedNet(account.BalanceType, sum.OpeningPrimaryDebit, sum.OpeningPrimaryCredit)
			row.PrimaryEnding = row.PrimaryOpening.Add(accounting.SignedNet(account.BalanceType, row.PrimaryDebit, row.PrimaryCredit))
			section.Currencies = append(section.Currencies, row)
		}

		sections = append(sections, section)
	}
	return sections, nil
}

// kasBankAccounts resolves the cash/bank book account set: the explicit list
// when given, otherwise every kas_bank account in scope.
func (s *reportingService) kasBankAccounts(ctx context.Context, accountIDs []string, filter domain.BalanceFilter) ([]domain.Account, error) {
	if len(accountIDs) > 0 {
		byID, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
		if err != nil {
			return nil, err
		}
		accounts := make([]domain.Account, 0, len(accountIDs))
		for _, id := range accountIDs {
			account, found := byID[id]
			if !found {
				return nil, fmt.Errorf("account %s missing from batch lookup", id)
			}
			if account.AccountType != domain.KasBank {
				return nil, fmt.Errorf("account %s (%s) is not a kas_bank account", account.Code, id)
			}
			accounts = append(accounts, account)
		}
		return accounts, nil
	}

	var companyID *string
	if len(filter.CompanyIDs) == 1 {
		companyID = &filter.CompanyIDs[0]
	}
	all, err := s.accountSvc.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, 8)
	for _, account := range all {
		if account.AccountType == domain.KasBank && !account.IsParent {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

// TrialBalance builds opening/debit/credit/closing per account over the
// period. Parent rows roll up all their descendants; rows are ordered by
// account code.
func (s *reportingService) TrialBalance(ctx context.Context, from, to time.Time, filter domain.BalanceFilter) ([]domain.TrialBalanceRow, error) {
	var companyID *string
	if len(filter.CompanyIDs) == 1 {
		companyID = &filter.CompanyIDs[0]
	}
	accounts, err := s.accountSvc.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	tree := domain.NewAccountTree(accounts)

	leafIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		if !account.IsParent {
			leafIDs = append(leafIDs, account.AccountID)
		}
	}

	sums, err := s.ledgerRepo.SumEntriesByPeriod(ctx, leafIDs, from, to, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trial balance entries: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for _, account := range accounts {
		ids, err := tree.DescendantIDs(account.AccountID)
		if err != nil {
			return nil, err
		}

		var openDebit, openCredit, moveDebit, moveCredit decimal.Decimal
		for _, id := range ids {
			sum, ok := sums[id]
			if !ok {
				continue
			}
			openDebit = openDebit.Add(sum.OpeningPrimaryDebit)
			openCredit = openCredit.Add(sum.OpeningPrimaryCredit)
			moveDebit = moveDebit.Add(sum.MovementPrimaryDebit)
			moveCredit = moveCredit.Add(sum.MovementPrimaryCredit)
		}

		opening := accounting.SignedNet(account.BalanceType, openDebit, openCredit)
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			AccountName: account.Name,
			IsParent:    account.IsParent,
			Opening:     opening,
			Debit:       moveDebit,
			Credit:      moveCredit,
			Closing:     opening.Add(accounting.SignedNet(account.BalanceType, moveDebit, moveCredit)),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}
