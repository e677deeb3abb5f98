package services

import (
	"context"
	"time"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/dto"
)

// ReportingSvcFacade assembles read-only financial reports on top of the
// balance engine. All reports are parameterized by explicit date range and
// scope filters.
type ReportingSvcFacade interface {
	// GeneralLedger builds per-account opening balance, dated entry rows with
	// running balance, and ending balance over a date range.
	GeneralLedger(ctx context.Context, params dto.GeneralLedgerParams) ([]domain.GeneralLedgerAccount, error)

	// CashBankBook builds the per-currency cash/bank book for kas_bank
	// accounts: native balances side by side with primary-currency equivalents.
	CashBankBook(ctx context.Context, params dto.CashBankBookParams) ([]domain.CashBankBookAccount, error)

	// TrialBalance builds opening/debit/credit/closing per account as of a
	// period, with parent accounts rolled up over descendants.
	TrialBalance(ctx context.Context, from, to time.Time, filter domain.BalanceFilter) ([]domain.TrialBalanceRow, error)
}

// DebtSvcFacade covers receivable/payable aging and mutation reporting plus
// debt document capture.
type DebtSvcFacade interface {
	// CreateDebt records a new receivable/payable document.
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest, creatorUserID string) (*domain.ExternalDebt, error)

	// RecordPayment records a payment against a specific debt document.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.DebtPayment, error)

	// Aging buckets outstanding documents by days past due as of a date.
	// Fully paid documents are excluded.
	Aging(ctx context.Context, debtType domain.DebtType, asOf time.Time, filter domain.BalanceFilter) (*domain.AgingReport, error)

	// Mutation reports opening/issued/paid/closing per document over a period,
	// using effective payment dates.
	Mutation(ctx context.Context, debtType domain.DebtType, from, to time.Time, filter domain.BalanceFilter) (*domain.DebtMutationReport, error)
}
