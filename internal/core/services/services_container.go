package services

import (
	portsrepo "github.com/reflyh2/accounting-sub001/internal/core/ports/repositories"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account, currency and company services first since posting depends on them
	container.Account = NewAccountService(repos.AccountRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Company = NewCompanyService(repos.CompanyRepo)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Currency, container.Company)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Account)
	container.Reporting = NewReportingService(repos.LedgerRepo, repos.AccountRepo, container.Account, container.Ledger)
	container.Debt = NewDebtService(repos.DebtRepo, container.Currency, container.Company)

	return container
}
