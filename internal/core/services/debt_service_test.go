package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/core/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
)

type DebtServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockDebtRepository
	mockCurrencySvc *MockCurrencyService
	mockCompanySvc  *MockCompanyService
	service         portssvc.DebtSvcFacade

	branch domain.Branch
	filter domain.BalanceFilter
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDebtRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewDebtService(suite.mockRepo, suite.mockCurrencySvc, suite.mockCompanySvc)

	suite.branch = domain.Branch{
		BranchID:  uuid.NewString(),
		CompanyID: uuid.NewString(),
		Code:      "JKT",
	}
	suite.filter = domain.BalanceFilter{}
}

func (suite *DebtServiceTestSuite) validDebtRequest() dto.CreateDebtRequest {
	one := decimal.NewFromInt(1)
	return dto.CreateDebtRequest{
		CompanyID:    suite.branch.CompanyID,
		BranchID:     suite.branch.BranchID,
		DebtType:     domain.Receivable,
		Number:       "INV-001",
		ContactName:  "PT Maju Jaya",
		IssueDate:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "IDR",
		ExchangeRate: &one,
	}
}

func (suite *DebtServiceTestSuite) TestCreateDebt_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.validDebtRequest()

	suite.mockCompanySvc.On("GetBranch", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRepo.On("SaveDebt", ctx, mock.AnythingOfType("domain.ExternalDebt")).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt)
	suite.NotEmpty(debt.DebtID)
	suite.Equal(req.Number, debt.Number)
	suite.Equal(domain.Receivable, debt.DebtType)
	suite.Equal(creatorUserID, debt.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestCreateDebt_SnapshotsRateAtIssueDate() {
	ctx := context.Background()
	req := suite.validDebtRequest()
	req.CurrencyCode = "USD"
	req.ExchangeRate = nil
	rate := decimal.NewFromInt(15000)

	suite.mockCompanySvc.On("GetBranch", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockCurrencySvc.On("RateFor", ctx, req.CompanyID, "USD", req.IssueDate).Return(rate, nil).Once()
	suite.mockRepo.On("SaveDebt", ctx, mock.AnythingOfType("domain.ExternalDebt")).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(debt.ExchangeRate.Equal(rate))
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestCreateDebt_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validDebtRequest()
	req.Amount = decimal.Zero

	_, err := suite.service.CreateDebt(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_DueBeforeIssue() {
	ctx := context.Background()
	req := suite.validDebtRequest()
	req.DueDate = req.IssueDate.AddDate(0, 0, -1)

	_, err := suite.service.CreateDebt(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_BranchCompanyMismatch() {
	ctx := context.Background()
	req := suite.validDebtRequest()
	req.CompanyID = uuid.NewString()

	suite.mockCompanySvc.On("GetBranch", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.CreateDebt(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) existingDebt(amount int64) *domain.ExternalDebt {
	return &domain.ExternalDebt{
		DebtID:       uuid.NewString(),
		CompanyID:    suite.branch.CompanyID,
		BranchID:     suite.branch.BranchID,
		DebtType:     domain.Receivable,
		Number:       "INV-002",
		ContactName:  "CV Sentosa",
		IssueDate:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(amount),
		CurrencyCode: "IDR",
		ExchangeRate: decimal.NewFromInt(1),
	}
}

func (suite *DebtServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	debt := suite.existingDebt(1000)
	req := dto.RecordPaymentRequest{
		DebtID:      debt.DebtID,
		Amount:      decimal.NewFromInt(400),
		Method:      domain.PaymentTransfer,
		PaymentDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, []string{debt.DebtID}).
		Return(map[string][]domain.DebtPayment{}, nil).Once()
	suite.mockRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.DebtPayment")).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(debt.DebtID, payment.DebtID)
	suite.True(payment.Amount.Equal(decimal.NewFromInt(400)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestRecordPayment_ChequeRequiresWithdrawalDate() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		DebtID:      uuid.NewString(),
		Amount:      decimal.NewFromInt(100),
		Method:      domain.PaymentCheque,
		PaymentDate: time.Now(),
	}

	_, err := suite.service.RecordPayment(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	debt := suite.existingDebt(1000)
	req := dto.RecordPaymentRequest{
		DebtID:      debt.DebtID,
		Amount:      decimal.NewFromInt(700),
		Method:      domain.PaymentCash,
		PaymentDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, []string{debt.DebtID}).
		Return(map[string][]domain.DebtPayment{
			debt.DebtID: {{PaymentID: uuid.NewString(), DebtID: debt.DebtID, Amount: decimal.NewFromInt(500), Method: domain.PaymentCash}},
		}, nil).Once()

	_, err := suite.service.RecordPayment(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestAging_BucketsAndTotals() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	current := suite.existingDebt(100)
	current.DueDate = asOf.AddDate(0, 0, 10) // not yet due
	overdue45 := suite.existingDebt(200)
	overdue45.Number = "INV-010"
	overdue45.DueDate = asOf.AddDate(0, 0, -45) // 31-60 bucket
	overdue100 := suite.existingDebt(300)
	overdue100.Number = "INV-011"
	overdue100.DueDate = asOf.AddDate(0, 0, -100) // over 90

	debts := []domain.ExternalDebt{*current, *overdue45, *overdue100}

	suite.mockRepo.On("ListDebts", ctx, domain.Receivable, asOf, suite.filter).Return(debts, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.DebtPayment{
			overdue45.DebtID: {{Amount: decimal.NewFromInt(50), Method: domain.PaymentCash, PaymentDate: asOf.AddDate(0, 0, -5)}},
		}, nil).Once()

	report, err := suite.service.Aging(ctx, domain.Receivable, asOf, suite.filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	suite.True(report.Totals[domain.BucketNotYetDue].Equal(decimal.NewFromInt(100)))
	suite.True(report.Totals[domain.Bucket31To60].Equal(decimal.NewFromInt(150)), "partial payment reduces the outstanding amount")
	suite.True(report.Totals[domain.BucketOver90].Equal(decimal.NewFromInt(300)))
	suite.True(report.Overall.Equal(decimal.NewFromInt(550)))

	// Rows come back ordered by due date.
	suite.Equal(overdue100.Number, report.Rows[0].Number)
	suite.Equal(domain.BucketOver90, report.Rows[0].Bucket)
}

func (suite *DebtServiceTestSuite) TestAging_FullyPaidExcluded() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	debt := suite.existingDebt(500)

	suite.mockRepo.On("ListDebts", ctx, domain.Receivable, asOf, suite.filter).
		Return([]domain.ExternalDebt{*debt}, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.DebtPayment{
			debt.DebtID: {{Amount: decimal.NewFromInt(500), Method: domain.PaymentCash, PaymentDate: asOf.AddDate(0, 0, -1)}},
		}, nil).Once()

	report, err := suite.service.Aging(ctx, domain.Receivable, asOf, suite.filter)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.Overall.IsZero())
}

func (suite *DebtServiceTestSuite) TestAging_ChequeCountsAtWithdrawalDate() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	debt := suite.existingDebt(500)

	// Cheque recorded before asOf but only withdrawn after it: still outstanding.
	withdrawal := asOf.AddDate(0, 0, 7)
	suite.mockRepo.On("ListDebts", ctx, domain.Receivable, asOf, suite.filter).
		Return([]domain.ExternalDebt{*debt}, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.DebtPayment{
			debt.DebtID: {{Amount: decimal.NewFromInt(500), Method: domain.PaymentCheque, PaymentDate: asOf.AddDate(0, 0, -3), WithdrawalDate: &withdrawal}},
		}, nil).Once()

	report, err := suite.service.Aging(ctx, domain.Receivable, asOf, suite.filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.True(report.Rows[0].Outstanding.Equal(decimal.NewFromInt(500)))
}

func (suite *DebtServiceTestSuite) TestMutation_OpeningIssuedPaidClosing() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	carried := suite.existingDebt(1000) // issued May 1, partially paid before June
	carried.Number = "INV-020"
	issued := suite.existingDebt(400) // issued inside the period
	issued.Number = "INV-021"
	issued.IssueDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListDebts", ctx, domain.Receivable, to, suite.filter).
		Return([]domain.ExternalDebt{*carried, *issued}, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.DebtPayment{
			carried.DebtID: {
				{Amount: decimal.NewFromInt(300), Method: domain.PaymentCash, PaymentDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
				{Amount: decimal.NewFromInt(200), Method: domain.PaymentCash, PaymentDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
			},
		}, nil).Once()

	report, err := suite.service.Mutation(ctx, domain.Receivable, from, to, suite.filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)

	// Rows are sorted by document number.
	suite.Equal("INV-020", report.Rows[0].Number)
	suite.True(report.Rows[0].Opening.Equal(decimal.NewFromInt(700)))
	suite.True(report.Rows[0].Paid.Equal(decimal.NewFromInt(200)))
	suite.True(report.Rows[0].Closing.Equal(decimal.NewFromInt(500)))

	suite.Equal("INV-021", report.Rows[1].Number)
	suite.True(report.Rows[1].Issued.Equal(decimal.NewFromInt(400)))
	suite.True(report.Rows[1].Closing.Equal(decimal.NewFromInt(400)))

	suite.True(report.Opening.Equal(decimal.NewFromInt(700)))
	suite.True(report.Issued.Equal(decimal.NewFromInt(400)))
	suite.True(report.Paid.Equal(decimal.NewFromInt(200)))
	suite.True(report.Closing.Equal(decimal.NewFromInt(900)))
}

func (suite *DebtServiceTestSuite) TestMutation_SkipsSettledBeforePeriod() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	settled := suite.existingDebt(500)

	suite.mockRepo.On("ListDebts", ctx, domain.Receivable, to, suite.filter).
		Return([]domain.ExternalDebt{*settled}, nil).Once()
	suite.mockRepo.On("ListPaymentsByDebtIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.DebtPayment{
			settled.DebtID: {{Amount: decimal.NewFromInt(500), Method: domain.PaymentCash, PaymentDate: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)}},
		}, nil).Once()

	report, err := suite.service.Mutation(ctx, domain.Receivable, from, to, suite.filter)

	suite.Require().NoError(err)
	suite.Empty(report.Rows, "documents with no opening, issued, or paid movement are omitted")
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
