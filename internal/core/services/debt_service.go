package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
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

// debtService tracks receivable/payable documents and builds the aging and
// mutation reports over them.
type debtService struct {
	debtRepo    portsrepo.DebtRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewDebtService creates a new DebtService.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, currencySvc portssvc.CurrencySvcFacade, companySvc portssvc.CompanySvcFacade) portssvc.DebtSvcFacade {
	return &debtService{debtRepo: debtRepo, currencySvc: currencySvc, companySvc: companySvc}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// CreateDebt records a new receivable/payable document. The exchange rate is
// snapshotted at issue date when not supplied.
func (s *debtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest, creatorUserID string) (*domain.ExternalDebt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: debt amount must be positive", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: due date before issue date", apperrors.ErrValidation)
	}

	branch, err := s.companySvc.GetBranch(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", req.BranchID, err)
	}
	if branch.CompanyID != req.CompanyID {
		return nil, fmt.Errorf("%w: branch %s does not belong to company %s", apperrors.ErrValidation, req.BranchID, req.CompanyID)
	}

	rate := decimal.Decimal{}
	if req.ExchangeRate != nil {
		rate = *req.ExchangeRate
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
	} else {
		rate, err = s.currencySvc.RateFor(ctx, req.CompanyID, req.CurrencyCode, req.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve exchange rate for %s: %w", req.CurrencyCode, err)
		}
	}

	now := time.Now().UTC()
	debt := domain.ExternalDebt{
		DebtID:       uuid.NewString(),
		CompanyID:    req.CompanyID,
		BranchID:     req.BranchID,
		DebtType:     req.DebtType,
		Number:       req.Number,
		ContactName:  req.ContactName,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		logger.Error("Failed to save debt", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}
	return &debt, nil
}

// RecordPayment records a payment against a specific debt document. Cheque and
// giro payments must carry a withdrawal date; overpayment is rejected.
func (s *debtService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.DebtPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if (req.Method == domain.PaymentCheque || req.Method == domain.PaymentGiro) && req.WithdrawalDate == nil {
		return nil, fmt.Errorf("%w: withdrawal date is required for %s payments", apperrors.ErrValidation, req.Method)
	}

	debt, err := s.debtRepo.FindDebtByID(ctx, req.DebtID)
	if err != nil {
		return nil, fmt.Errorf("failed to find debt %s: %w", req.DebtID, err)
	}

	payments, err := s.debtRepo.ListPaymentsByDebtIDs(ctx, []string{req.DebtID})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for debt %s: %w", req.DebtID, err)
	}
	paid := decimal.Zero
	for _, p := range payments[req.DebtID] {
		paid = paid.Add(p.Amount)
	}
	if paid.Add(req.Amount).GreaterThan(debt.Amount) {
		return nil, fmt.Errorf("%w: payment exceeds outstanding amount %s on debt %s", apperrors.ErrValidation, debt.Amount.Sub(paid).String(), req.DebtID)
	}

	now := time.Now().UTC()
	payment := domain.DebtPayment{
		PaymentID:      uuid.NewString(),
		DebtID:         req.DebtID,
		Amount:         req.Amount,
		Method:         req.Method,
		PaymentDate:    req.PaymentDate,
		WithdrawalDate: req.WithdrawalDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.debtRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("debt_id", req.DebtID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	return &payment, nil
}

// Aging buckets outstanding documents by days past due as of a date. Only
// payments effective on or before asOf reduce the outstanding amount; fully
// paid documents are excluded.
func (s *debtService) Aging(ctx context.Context, debtType domain.DebtType, asOf time.Time, filter domain.BalanceFilter) (*domain.AgingReport, error) {
	debts, err := s.debtRepo.ListDebts(ctx, debtType, asOf, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	paidByDebt, err := s.paymentsEffectiveBy(ctx, debts, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.AgingReport{
		AsOf:   asOf,
		Rows:   make([]domain.AgingRow, 0, len(debts)),
		Totals: make(map[domain.AgingBucket]decimal.Decimal),
	}
	for _, debt := range debts {
		outstanding := debt.Amount.Sub(paidByDebt[debt.DebtID])
		if !outstanding.IsPositive() {
			continue
		}
		bucket := accounting.AgeBucket(debt.DueDate, asOf)
		report.Rows = append(report.Rows, domain.AgingRow{
			DebtID:      debt.DebtID,
			Number:      debt.Number,
			ContactName: debt.ContactName,
			IssueDate:   debt.IssueDate,
			DueDate:     debt.DueDate,
			Outstanding: outstanding,
			Bucket:      bucket,
		})
		report.Totals[bucket] = report.Totals[bucket].Add(outstanding)
		report.Overall = report.Overall.Add(outstanding)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].DueDate.Equal(report.Rows[j].DueDate) {
			return report.Rows[i].Number < report.Rows[j].Number
		}
		return report.Rows[i].DueDate.Before(report.Rows[j].DueDate)
	})
	return report, nil
}

// Mutation reports opening/issued/paid/closing per document over [from, to].
// Documents issued before the period contribute their unpaid remainder to
// opening; documents issued inside it show under issued. Payments count in the
// period their effective date falls in.
func (s *debtService) Mutation(ctx context.Context, debtType domain.DebtType, from, to time.Time, filter domain.BalanceFilter) (*domain.DebtMutationReport, error) {
	debts, err := s.debtRepo.ListDebts(ctx, debtType, to, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	debtIDs := make([]string, len(debts))
	for i, d := range debts {
		debtIDs[i] = d.DebtID
	}
	payments, err := s.debtRepo.ListPaymentsByDebtIDs(ctx, debtIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	report := &domain.DebtMutationReport{
		From: from,
		To:   to,
		Rows: make([]domain.DebtMutationRow, 0, len(debts)),
	}
	for _, debt := range debts {
		var paidBefore, paidInPeriod decimal.Decimal
		for _, p := range payments[debt.DebtID] {
			effective := accounting.EffectivePaymentDate(p)
			switch {
			case effective.Before(from):
				paidBefore = paidBefore.Add(p.Amount)
			case !effective.After(to):
				paidInPeriod = paidInPeriod.Add(p.Amount)
			}
		}

		var opening, issued decimal.Decimal
		if debt.IssueDate.Before(from) {
			opening = debt.Amount.Sub(paidBefore)
		} else {
			issued = debt.Amount
		}

		closing := opening.Add(issued).Sub(paidInPeriod)
		if opening.IsZero() && issued.IsZero() && paidInPeriod.IsZero() {
			continue
		}

		report.Rows = append(report.Rows, domain.DebtMutationRow{
			DebtID:      debt.DebtID,
			Number:      debt.Number,
			ContactName: debt.ContactName,
			Opening:     opening,
			Issued:      issued,
			Paid:        paidInPeriod,
			Closing:     closing,
		})
		report.Opening = report.Opening.Add(opening)
		report.Issued = report.Issued.Add(issued)
		report.Paid = report.Paid.Add(paidInPeriod)
		report.Closing = report.Closing.Add(closing)
	}

	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].Number < report.Rows[j].Number })
	return report, nil
}

// paymentsEffectiveBy sums, per debt, the payments whose effective date is on
// or before the cutoff.
func (s *debtService) paymentsEffectiveBy(ctx context.Context, debts []domain.ExternalDebt, cutoff time.Time) (map[string]decimal.Decimal, error) {
	debtIDs := make([]string, len(debts))
	for i, d := range debts {
		debtIDs[i] = d.DebtID
	}
	payments, err := s.debtRepo.ListPaymentsByDebtIDs(ctx, debtIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	paid := make(map[string]decimal.Decimal, len(debts))
	for debtID, ps := range payments {
		for _, p := range ps {
			if !accounting.EffectivePaymentDate(p).After(cutoff) {
				paid[debtID] = paid[debtID].Add(p.Amount)
			}
		}
	}
	return paid, nil
}
