package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/core/services"
	"github.com/acmeerp/ledger_core/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType, status string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasPostedLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountMetadata(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

// --- Mock TenantReader ---
type MockTenantReader struct {
	mock.Mock
}

func (m *MockTenantReader) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantReader) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAccountRepository
	mockTenantRepo *MockTenantReader
	service        portssvc.AccountSvcFacade
	tenantID       string
	userID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockTenantRepo = new(MockTenantReader)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithTenantReader(suite.mockTenantRepo))
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "1000",
		Name:           "Cash",
		AccountType:    domain.Asset,
		CurrencyCode:   "USD",
		OpeningBalance: decimal.RequireFromString("150.25"),
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&domain.Tenant{TenantID: suite.tenantID}, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenantID, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.TenantID == suite.tenantID &&
			a.Code == "1000" &&
			a.AccountType == domain.Asset &&
			a.Status == domain.AccountActive &&
			a.OpeningBalance.String() == "150.2500" &&
			a.CurrentBalance.String() == "150.2500" &&
			a.CreatedBy == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal("150.2500", account.CurrentBalance.String())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	existing := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1000"}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&domain.Tenant{TenantID: suite.tenantID}, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenantID, "1000").Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrDuplicateAccountCode)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "9999",
		Name:         "Mystery",
		AccountType:  domain.AccountType("GOODWILL"),
		CurrencyCode: "USD",
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&domain.Tenant{TenantID: suite.tenantID}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_TemporaryTypeWithOpeningBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "4000",
		Name:           "Sales Revenue",
		AccountType:    domain.Revenue,
		CurrencyCode:   "USD",
		OpeningBalance: decimal.RequireFromString("500"),
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&domain.Tenant{TenantID: suite.tenantID}, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenantID, "4000").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ZeroOpeningExpense() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "5000",
		Name:         "Office Supplies",
		AccountType:  domain.Expense,
		CurrencyCode: "USD",
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&domain.Tenant{TenantID: suite.tenantID}, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenantID, "5000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountType == domain.Expense && a.OpeningBalance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentMissing() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1010",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		CurrencyCode:    "USD",
		ParentAccountID: &parentID,
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&domain.Tenant{TenantID: suite.tenantID}, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenantID, "1010").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, parentID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrInvalidParent)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_TenantMissing() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := &domain.Account{AccountID: accountID, TenantID: suite.tenantID}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.tenantID, accountID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.tenantID, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultLimit() {
	ctx := context.Background()
	expected := []domain.Account{{AccountID: uuid.NewString()}}

	suite.mockRepo.On("ListAccounts", ctx, suite.tenantID, "", "", 50, 0).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{})

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountMetadata_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	newName := "Cash on Hand"
	existing := &domain.Account{AccountID: accountID, TenantID: suite.tenantID, Name: "Cash", Status: domain.AccountActive}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccountMetadata", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccountMetadata(ctx, suite.tenantID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountMetadata_NoChanges() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, TenantID: suite.tenantID, Name: "Cash"}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccountMetadata(ctx, suite.tenantID, accountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing, account)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccountMetadata", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, TenantID: suite.tenantID}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("HasPostedLines", ctx, suite.tenantID, accountID).Return(false, nil).Once()
	suite.mockRepo.On("HasChildren", ctx, suite.tenantID, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, suite.tenantID, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_HasPostedLines() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, TenantID: suite.tenantID}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("HasPostedLines", ctx, suite.tenantID, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SystemAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, TenantID: suite.tenantID, IsSystemAccount: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSystemAccount)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RepoError() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, TenantID: suite.tenantID}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("HasPostedLines", ctx, suite.tenantID, accountID).Return(false, nil).Once()
	suite.mockRepo.On("HasChildren", ctx, suite.tenantID, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, suite.tenantID, accountID).Return(expectedErr).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
