package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, from, to)
	var revenue, expenses []domain.AccountAmount
	if args.Get(0) != nil {
		revenue = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.AccountAmount)
	}
	return revenue, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, asOf)
	var assets, liabilities, equity []domain.AccountAmount
	if args.Get(0) != nil {
		assets = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		liabilities = args.Get(1).([]domain.AccountAmount)
	}
	if args.Get(2) != nil {
		equity = args.Get(2).([]domain.AccountAmount)
	}
	return assets, liabilities, equity, args.Error(3)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	tenantID string
	asOf     time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.tenantID = uuid.NewString()
	suite.asOf = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func amount(id, code, name, net string) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID:   id,
		AccountCode: code,
		Name:        name,
		NetAmount:   decimal.RequireFromString(net),
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.RequireFromString("150.0000"), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.RequireFromString("150.0000")},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Balanced)
	suite.True(report.TotalDebit.Equal(decimal.RequireFromString("150")))
	suite.True(report.TotalCredit.Equal(decimal.RequireFromString("150")))
	suite.Len(report.Rows, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Unbalanced() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", Debit: decimal.RequireFromString("150.0000"), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.RequireFromString("149.9999")},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).Return(rows, nil).Once()

	// An unbalanced ledger is reported as-is, never auto-corrected.
	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.False(report.Balanced)
	suite.True(report.TotalDebit.Equal(decimal.RequireFromString("150")))
	suite.True(report.TotalCredit.Equal(decimal.RequireFromString("149.9999")))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Empty() {
	ctx := context.Background()

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).Return([]domain.TrialBalanceRow{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Balanced)
	suite.Empty(report.Rows)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).Return(nil, expectedErr).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, expectedErr)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetIncome() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf
	revenue := []domain.AccountAmount{amount(uuid.NewString(), "4000", "Sales", "500.00")}
	expenses := []domain.AccountAmount{
		amount(uuid.NewString(), "5000", "Rent", "120.00"),
		amount(uuid.NewString(), "5100", "Supplies", "30.00"),
	}

	suite.mockRepo.On("GetProfitAndLossData", ctx, suite.tenantID, from, to).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenantID, from, to)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("350")))
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 2)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetLoss() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf
	revenue := []domain.AccountAmount{amount(uuid.NewString(), "4000", "Sales", "100.00")}
	expenses := []domain.AccountAmount{amount(uuid.NewString(), "5000", "Rent", "250.00")}

	suite.mockRepo.On("GetProfitAndLossData", ctx, suite.tenantID, from, to).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenantID, from, to)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("-150")))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvalidRange() {
	ctx := context.Background()
	from := suite.asOf
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenantID, from, to)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetProfitAndLossData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RetainedEarningsFolded() {
	ctx := context.Background()
	assets := []domain.AccountAmount{amount(uuid.NewString(), "1000", "Cash", "450.00")}
	liabilities := []domain.AccountAmount{amount(uuid.NewString(), "2000", "Payables", "100.00")}
	equity := []domain.AccountAmount{amount(uuid.NewString(), "3000", "Capital", "0.00")}
	revenue := []domain.AccountAmount{amount(uuid.NewString(), "4000", "Sales", "500.00")}
	expenses := []domain.AccountAmount{amount(uuid.NewString(), "5000", "Rent", "150.00")}

	suite.mockRepo.On("GetBalanceSheetData", ctx, suite.tenantID, suite.asOf).Return(assets, liabilities, equity, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, suite.tenantID, time.Time{}, suite.asOf).Return(revenue, expenses, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.RetainedEarnings.Equal(decimal.RequireFromString("350")))
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("450")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("100")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("350")))
	suite.True(report.Balanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Unbalanced() {
	ctx := context.Background()
	assets := []domain.AccountAmount{amount(uuid.NewString(), "1000", "Cash", "451.00")}
	liabilities := []domain.AccountAmount{amount(uuid.NewString(), "2000", "Payables", "100.00")}
	equity := []domain.AccountAmount{}
	revenue := []domain.AccountAmount{amount(uuid.NewString(), "4000", "Sales", "500.00")}
	expenses := []domain.AccountAmount{amount(uuid.NewString(), "5000", "Rent", "150.00")}

	suite.mockRepo.On("GetBalanceSheetData", ctx, suite.tenantID, suite.asOf).Return(assets, liabilities, equity, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, suite.tenantID, time.Time{}, suite.asOf).Return(revenue, expenses, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.False(report.Balanced)
}

// --- Run Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
