package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockAccountService
	service        portssvc.LedgerSvcFacade

	asOf   time.Time
	filter domain.BalanceFilter
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountSvc)

	suite.asOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.filter = domain.BalanceFilter{}
}

func (suite *LedgerServiceTestSuite) TestBalance_DebitNormal() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.DebitNormal}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, account.AccountID).Return([]string{account.AccountID}, nil).Once()
	suite.mockLedgerRepo.On("SumEntries", ctx, []string{account.AccountID}, suite.asOf, suite.filter).
		Return(map[string]domain.EntrySums{
			account.AccountID: {
				AccountID:     account.AccountID,
				PrimaryDebit:  decimal.NewFromInt(700),
				PrimaryCredit: decimal.NewFromInt(200),
			},
		}, nil).Once()

	balance, err := suite.service.Balance(ctx, account.AccountID, suite.asOf, suite.filter)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)), "debit-normal balance should be debit minus credit, got %s", balance)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestBalance_CreditNormal() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.CreditNormal}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, account.AccountID).Return([]string{account.AccountID}, nil).Once()
	suite.mockLedgerRepo.On("SumEntries", ctx, []string{account.AccountID}, suite.asOf, suite.filter).
		Return(map[string]domain.EntrySums{
			account.AccountID: {
				AccountID:     account.AccountID,
				PrimaryDebit:  decimal.NewFromInt(200),
				PrimaryCredit: decimal.NewFromInt(700),
			},
		}, nil).Once()

	balance, err := suite.service.Balance(ctx, account.AccountID, suite.asOf, suite.filter)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestBalance_ParentRollsUpDescendants() {
	ctx := context.Background()
	parent := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.DebitNormal, IsParent: true}
	childA := uuid.NewString()
	childB := uuid.NewString()
	ids := []string{parent.AccountID, childA, childB}

	suite.mockAccountSvc.On("GetAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, parent.AccountID).Return(ids, nil).Once()
	suite.mockLedgerRepo.On("SumEntries", ctx, ids, suite.asOf, suite.filter).
		Return(map[string]domain.EntrySums{
			childA: {AccountID: childA, PrimaryDebit: decimal.NewFromInt(300)},
			childB: {AccountID: childB, PrimaryDebit: decimal.NewFromInt(450), PrimaryCredit: decimal.NewFromInt(50)},
		}, nil).Once()

	balance, err := suite.service.Balance(ctx, parent.AccountID, suite.asOf, suite.filter)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(700)), "parent balance should aggregate all descendants, got %s", balance)
}

func (suite *LedgerServiceTestSuite) TestOpeningBalance_UsesDayBefore() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.DebitNormal}
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dayBefore := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, account.AccountID).Return([]string{account.AccountID}, nil).Once()
	suite.mockLedgerRepo.On("SumEntries", ctx, []string{account.AccountID}, dayBefore, suite.filter).
		Return(map[string]domain.EntrySums{}, nil).Once()

	balance, err := suite.service.OpeningBalance(ctx, account.AccountID, from, suite.filter)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCurrencyBalances_PerCurrency() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), AccountType: domain.KasBank, BalanceType: domain.DebitNormal}
	ids := []string{account.AccountID}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, account.AccountID).Return(ids, nil).Once()
	suite.mockLedgerRepo.On("SumEntriesByCurrency", ctx, ids, suite.asOf, suite.filter).
		Return(map[string]domain.CurrencyEntrySums{
			"USD": {
				CurrencyCode: "USD",
				Debit:        decimal.NewFromInt(2),
				PrimaryDebit: decimal.NewFromInt(30000),
			},
			"IDR": {
				CurrencyCode: "IDR",
				Debit:        decimal.NewFromInt(1000),
				PrimaryDebit: decimal.NewFromInt(1000),
			},
		}, nil).Once()

	balances, err := suite.service.CurrencyBalances(ctx, account.AccountID, suite.asOf, suite.filter)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.Equal("IDR", balances[0].CurrencyCode)
	suite.True(balances[0].Native.Equal(decimal.NewFromInt(1000)))
	suite.True(balances[0].Primary.Equal(decimal.NewFromInt(1000)))
	suite.Equal("USD", balances[1].CurrencyCode)
	suite.True(balances[1].Native.Equal(decimal.NewFromInt(2)))
	suite.True(balances[1].Primary.Equal(decimal.NewFromInt(30000)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPeriodBalances_EndingIsOpeningPlusMovement() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.DebitNormal}
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	ids := []string{account.AccountID}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, ids).
		Return(map[string]domain.Account{account.AccountID: account}, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, account.AccountID).Return(ids, nil).Once()
	suite.mockLedgerRepo.On("SumEntriesByPeriod", ctx, ids, from, to, suite.filter).
		Return(map[string]domain.PeriodSums{
			account.AccountID: {
				AccountID:             account.AccountID,
				OpeningPrimaryDebit:   decimal.NewFromInt(900),
				OpeningPrimaryCredit:  decimal.NewFromInt(100),
				MovementPrimaryDebit:  decimal.NewFromInt(250),
				MovementPrimaryCredit: decimal.NewFromInt(50),
			},
		}, nil).Once()

	result, err := suite.service.PeriodBalances(ctx, ids, from, to, suite.filter)

	suite.Require().NoError(err)
	pb, ok := result[account.AccountID]
	suite.Require().True(ok)
	suite.True(pb.Opening.Equal(decimal.NewFromInt(800)))
	suite.True(pb.Movement.Equal(decimal.NewFromInt(200)))
	suite.True(pb.Ending.Equal(decimal.NewFromInt(1000)))
}

func (suite *LedgerServiceTestSuite) TestPeriodBalances_SharedDescendantFetchedOnce() {
	ctx := context.Background()
	parent := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.DebitNormal, IsParent: true}
	child := domain.Account{AccountID: uuid.NewString(), BalanceType: domain.DebitNormal}
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	requested := []string{parent.AccountID, child.AccountID}
	union := []string{parent.AccountID, child.AccountID}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, requested).
		Return(map[string]domain.Account{parent.AccountID: parent, child.AccountID: child}, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, parent.AccountID).
		Return([]string{parent.AccountID, child.AccountID}, nil).Once()
	suite.mockAccountSvc.On("DescendantAccountIDs", ctx, child.AccountID).
		Return([]string{child.AccountID}, nil).Once()
	suite.mockLedgerRepo.On("SumEntriesByPeriod", ctx, union, from, to, suite.filter).
		Return(map[string]domain.PeriodSums{
			child.AccountID: {
				AccountID:            child.AccountID,
				MovementPrimaryDebit: decimal.NewFromInt(120),
			},
		}, nil).Once()

	result, err := suite.service.PeriodBalances(ctx, requested, from, to, suite.filter)

	suite.Require().NoError(err)
	suite.True(result[parent.AccountID].Movement.Equal(decimal.NewFromInt(120)), "parent should include the child's movement")
	suite.True(result[child.AccountID].Movement.Equal(decimal.NewFromInt(120)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestVerifyStoredBalance_Consistent() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		BalanceType: domain.DebitNormal,
		Balance:     decimal.NewFromInt(500),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockLedgerRepo.On("SumEntries", ctx, []string{account.AccountID}, mock.AnythingOfType("time.Time"), domain.BalanceFilter{}).
		Return(map[string]domain.EntrySums{
			account.AccountID: {
				AccountID:     account.AccountID,
				PrimaryDebit:  decimal.NewFromInt(700),
				PrimaryCredit: decimal.NewFromInt(200),
			},
		}, nil).Once()

	check, err := suite.service.VerifyStoredBalance(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.True(check.Consistent)
	suite.True(check.Stored.Equal(check.Computed))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestVerifyStoredBalance_DetectsDrift() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		BalanceType: domain.CreditNormal,
		Balance:     decimal.NewFromInt(999),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockLedgerRepo.On("SumEntries", ctx, []string{account.AccountID}, mock.AnythingOfType("time.Time"), domain.BalanceFilter{}).
		Return(map[string]domain.EntrySums{
			account.AccountID: {
				AccountID:     account.AccountID,
				PrimaryCredit: decimal.NewFromInt(1000),
			},
		}, nil).Once()

	check, err := suite.service.VerifyStoredBalance(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.False(check.Consistent)
	suite.True(check.Stored.Equal(decimal.NewFromInt(999)))
	suite.True(check.Computed.Equal(decimal.NewFromInt(1000)))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
