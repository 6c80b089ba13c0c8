package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/gl_service/internal/apperrors"
	"github.com/finbooks/gl_service/internal/core/domain"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
	"github.com/finbooks/gl_service/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockOpenItems     *MockOpenItemSource
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOpenItems = new(MockOpenItemSource)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockOpenItems)
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalance_DebitNormal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1000",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, account.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(120), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, account.AccountID, nil)

	suite.Require().NoError(err)
	suite.Equal("1000", balance.AccountCode)
	suite.True(balance.Debit.Equal(decimal.NewFromInt(500)))
	suite.True(balance.Credit.Equal(decimal.NewFromInt(120)))
	suite.True(balance.Net.Equal(decimal.NewFromInt(380)))
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalance_CreditNormal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "4000",
		AccountType:   domain.Revenue,
		NormalBalance: domain.CreditNormal,
		IsActive:      true,
	}
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, account.AccountID, &asOf).
		Return(decimal.NewFromInt(50), decimal.NewFromInt(900), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, account.AccountID, &asOf)

	suite.Require().NoError(err)
	suite.True(balance.Net.Equal(decimal.NewFromInt(850)))
	suite.Equal(&asOf, balance.AsOfDate)
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalance_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountBalance(ctx, accountID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetAccountActivity", ctx, accountID, (*time.Time)(nil))
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_SumsTotals() {
	ctx := context.Background()
	asOf := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1000", AccountName: "Cash", Debit: decimal.NewFromInt(700), Credit: decimal.NewFromInt(100)},
		{AccountCode: "4000", AccountName: "Sales Revenue", Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(700)},
	}

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, asOf).Return(rows, nil).Once()

	tb, err := suite.service.GetTrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.Len(tb.Rows, 2)
	suite.True(tb.TotalDebit.Equal(decimal.NewFromInt(800)))
	suite.True(tb.TotalCredit.Equal(decimal.NewFromInt(800)))
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit))
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_NoActivity() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, asOf).Return([]domain.TrialBalanceRow{}, nil).Once()

	tb, err := suite.service.GetTrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.Empty(tb.Rows)
	suite.True(tb.TotalDebit.IsZero())
	suite.True(tb.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestGetAgingReport_BucketBoundaries() {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	items := []domain.OpenItem{
		{ItemID: "due-tomorrow", DueDate: asOf.Add(day), TotalAmount: decimal.NewFromInt(10), PaidAmount: decimal.Zero},
		{ItemID: "due-today", DueDate: asOf, TotalAmount: decimal.NewFromInt(20), PaidAmount: decimal.Zero},
		{ItemID: "overdue-1", DueDate: asOf.Add(-1 * day), TotalAmount: decimal.NewFromInt(30), PaidAmount: decimal.Zero},
		{ItemID: "overdue-30", DueDate: asOf.Add(-30 * day), TotalAmount: decimal.NewFromInt(40), PaidAmount: decimal.Zero},
		{ItemID: "overdue-31", DueDate: asOf.Add(-31 * day), TotalAmount: decimal.NewFromInt(50), PaidAmount: decimal.Zero},
		{ItemID: "overdue-60", DueDate: asOf.Add(-60 * day), TotalAmount: decimal.NewFromInt(60), PaidAmount: decimal.Zero},
		{ItemID: "overdue-61", DueDate: asOf.Add(-61 * day), TotalAmount: decimal.NewFromInt(70), PaidAmount: decimal.Zero},
		{ItemID: "overdue-90", DueDate: asOf.Add(-90 * day), TotalAmount: decimal.NewFromInt(80), PaidAmount: decimal.Zero},
		{ItemID: "overdue-91", DueDate: asOf.Add(-91 * day), TotalAmount: decimal.NewFromInt(90), PaidAmount: decimal.Zero},
	}

	suite.mockOpenItems.On("ListOpenItems", ctx).Return(items, nil).Once()

	report, err := suite.service.GetAgingReport(ctx, asOf, nil)

	suite.Require().NoError(err)
	suite.Equal(9, report.Count)
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(450)))

	suite.True(report.Buckets[domain.BucketCurrent].Amount.Equal(decimal.NewFromInt(30)))
	suite.Equal(2, report.Buckets[domain.BucketCurrent].Count)
	suite.True(report.Buckets[domain.Bucket1To30].Amount.Equal(decimal.NewFromInt(70)))
	suite.True(report.Buckets[domain.Bucket31To60].Amount.Equal(decimal.NewFromInt(110)))
	suite.True(report.Buckets[domain.Bucket61To90].Amount.Equal(decimal.NewFromInt(150)))
	suite.True(report.Buckets[domain.BucketOver90].Amount.Equal(decimal.NewFromInt(90)))
	suite.Equal(1, report.Buckets[domain.BucketOver90].Count)
}

func (suite *ReportingServiceTestSuite) TestGetAgingReport_SkipsSettledItems() {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	items := []domain.OpenItem{
		{ItemID: "paid-in-full", DueDate: asOf.AddDate(0, 0, -10), TotalAmount: decimal.NewFromInt(100), PaidAmount: decimal.NewFromInt(100)},
		{ItemID: "partially-paid", DueDate: asOf.AddDate(0, 0, -10), TotalAmount: decimal.NewFromInt(100), PaidAmount: decimal.NewFromInt(60)},
	}

	suite.mockOpenItems.On("ListOpenItems", ctx).Return(items, nil).Once()

	report, err := suite.service.GetAgingReport(ctx, asOf, nil)

	suite.Require().NoError(err)
	suite.Equal(1, report.Count)
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(40)))
	suite.True(report.Buckets[domain.Bucket1To30].Amount.Equal(decimal.NewFromInt(40)))
}

func (suite *ReportingServiceTestSuite) TestGetAgingReport_BucketFilter() {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	items := []domain.OpenItem{
		{ItemID: "current", DueDate: asOf.AddDate(0, 0, 5), TotalAmount: decimal.NewFromInt(10), PaidAmount: decimal.Zero},
		{ItemID: "old", DueDate: asOf.AddDate(0, 0, -120), TotalAmount: decimal.NewFromInt(200), PaidAmount: decimal.Zero},
	}

	suite.mockOpenItems.On("ListOpenItems", ctx).Return(items, nil).Once()

	report, err := suite.service.GetAgingReport(ctx, asOf, []string{domain.BucketOver90})

	suite.Require().NoError(err)
	suite.Len(report.Buckets, 1)
	suite.True(report.Buckets[domain.BucketOver90].Amount.Equal(decimal.NewFromInt(200)))
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(210)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
