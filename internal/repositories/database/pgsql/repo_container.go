package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	ledgerRepo := newLedgerRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		JournalRepo:  journalRepo,
		LedgerRepo:   ledgerRepo,
		CurrencyRepo: currencyRepo,
		CompanyRepo:  companyRepo,
		DebtRepo:     debtRepo,
	}
}
