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
	"github.com/acmeerp/ledger_core/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string, currencyCode string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByTenant(ctx context.Context, tenantID string, status string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, status, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	args := m.Called(ctx, tenantID, accountID, limit, nextToken)
	var lines []domain.JournalEntryLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.JournalEntryLine)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return lines, token, args.Error(2)
}

func (m *MockJournalRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraftEntry(ctx context.Context, tenantID, entryID string) error {
	args := m.Called(ctx, tenantID, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) CancelDraftEntry(ctx context.Context, tenantID, entryID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, entryID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, tenantID, entryID, postedBy string, now time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, postedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ReverseEntry(ctx context.Context, tenantID, originalEntryID, reason, userID string, now time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, originalEntryID, reason, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, tenantID string, accountType, status string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReader) HasChildren(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountReader) HasPostedLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock FiscalPeriodReader ---
type MockFiscalPeriodReader struct {
	mock.Mock
}

func (m *MockFiscalPeriodReader) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) FindOverlapping(ctx context.Context, tenantID string, startDate, endDate time.Time, excludeID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, startDate, endDate, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountReader
	mockPeriodRepo  *MockFiscalPeriodReader
	service         portssvc.JournalSvcFacade
	tenantID        string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockPeriodRepo = new(MockFiscalPeriodReader)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		Status:       domain.AccountActive,
		CurrencyCode: "USD",
	}
	suite.revenueAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Code:         "4000",
		Name:         "Sales Revenue",
		AccountType:  domain.Revenue,
		Status:       domain.AccountActive,
		CurrencyCode: "USD",
	}
}

func (suite *JournalServiceTestSuite) accountsByID() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Cash sale",
		CurrencyCode: "USD",
		Lines: []dto.CreateJournalEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.RequireFromString("100.50")},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.RequireFromString("100.50")},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsByID(), nil).Once()
	suite.mockJournalRepo.On("SaveDraftEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.TenantID == suite.tenantID &&
			e.Status == domain.EntryDraft &&
			e.EntryNumber == 0 &&
			e.TotalDebit.String() == "100.5000" &&
			e.TotalCredit.String() == "100.5000"
	}), mock.AnythingOfType("[]domain.JournalEntryLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.Equal(suite.cashAccount.Code, entry.Lines[0].AccountCode)
	suite.Equal(suite.revenueAccount.Name, entry.Lines[1].AccountName)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].CreditAmount = decimal.RequireFromString("99.9999")

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsByID(), nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BothSidesOnOneLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].CreditAmount = decimal.RequireFromString("1")

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsByID(), nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	accounts := suite.accountsByID()
	inactive := suite.cashAccount
	inactive.Status = domain.AccountInactive
	accounts[inactive.AccountID] = inactive

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrAccountNotActive)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_CurrencyMismatch() {
	ctx := context.Background()
	req := suite.balancedRequest()
	accounts := suite.accountsByID()
	euro := suite.revenueAccount
	euro.CurrencyCode = "EUR"
	accounts[euro.AccountID] = euro

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrCurrencyMismatch)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	accounts := suite.accountsByID()
	delete(accounts, suite.revenueAccount.AccountID)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	draft := &domain.JournalEntry{
		EntryID:   entryID,
		TenantID:  suite.tenantID,
		EntryDate: entryDate,
		Status:    domain.EntryDraft,
	}
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    suite.tenantID,
		EntryDate:   entryDate,
		EntryNumber: 42,
		Status:      domain.EntryPosted,
	}
	openPeriod := &domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		Status:    domain.PeriodOpen,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, entryDate).Return(openPeriod, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, suite.tenantID, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(posted, nil).Once()

	result, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, result.Status)
	suite.Equal(int64(42), result.EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryPosted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()

	result, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrEntryNotDraft)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_NoPeriod() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, EntryDate: entryDate, Status: domain.EntryDraft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, entryDate).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrNoOpenPeriod)
}

func (suite *JournalServiceTestSuite) TestPostEntry_PeriodClosed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, EntryDate: entryDate, Status: domain.EntryDraft}
	closedPeriod := &domain.FiscalPeriod{PeriodID: uuid.NewString(), TenantID: suite.tenantID, Status: domain.PeriodClosed}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, entryDate).Return(closedPeriod, nil).Once()

	result, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrNoOpenPeriod)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_ConcurrentPostConflict() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, EntryDate: entryDate, Status: domain.EntryDraft}
	openPeriod := &domain.FiscalPeriod{PeriodID: uuid.NewString(), TenantID: suite.tenantID, Status: domain.PeriodOpen}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, entryDate).Return(openPeriod, nil).Once()
	// A concurrent poster won the row lock and flipped the status first.
	suite.mockJournalRepo.On("PostEntry", ctx, suite.tenantID, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrConflict).Once()

	result, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrEntryNotDraft)
}

func (suite *JournalServiceTestSuite) TestPostEntry_PeriodClosesMidPosting() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, EntryDate: entryDate, Status: domain.EntryDraft}
	openPeriod := &domain.FiscalPeriod{PeriodID: uuid.NewString(), TenantID: suite.tenantID, Status: domain.PeriodOpen}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, entryDate).Return(openPeriod, nil).Once()
	// The period closed after the pre-check; the in-transaction re-check
	// under row lock catches it.
	suite.mockJournalRepo.On("PostEntry", ctx, suite.tenantID, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrPeriodNotPostable).Once()

	result, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrNoOpenPeriod)
	suite.NotErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCancelEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryDraft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("CancelDraftEntry", ctx, suite.tenantID, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCancelEntry_Posted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryPosted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()

	err := suite.service.CancelEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotDraft)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CancelDraftEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryPosted}
	reversal := &domain.JournalEntry{
		EntryID:           reversalID,
		TenantID:          suite.tenantID,
		Status:            domain.EntryPosted,
		ReversalOfEntryID: &entryID,
	}
	openPeriod := &domain.FiscalPeriod{PeriodID: uuid.NewString(), TenantID: suite.tenantID, Status: domain.PeriodOpen}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, mock.AnythingOfType("time.Time")).Return(openPeriod, nil).Once()
	suite.mockJournalRepo.On("ReverseEntry", ctx, suite.tenantID, entryID, "duplicate charge", suite.userID, mock.AnythingOfType("time.Time")).Return(reversal, nil).Once()

	result, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, "duplicate charge", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(reversalID, result.EntryID)
	suite.Require().NotNil(result.ReversalOfEntryID)
	suite.Equal(entryID, *result.ReversalOfEntryID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryDraft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()

	result, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, "oops", suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrEntryNotPosted)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:           entryID,
		TenantID:          suite.tenantID,
		Status:            domain.EntryPosted,
		ReversedByEntryID: &reversalID,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()

	result, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, "again", suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrEntryReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_PeriodClosesMidPosting() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryPosted}
	openPeriod := &domain.FiscalPeriod{PeriodID: uuid.NewString(), TenantID: suite.tenantID, Status: domain.PeriodOpen}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.tenantID, mock.AnythingOfType("time.Time")).Return(openPeriod, nil).Once()
	suite.mockJournalRepo.On("ReverseEntry", ctx, suite.tenantID, entryID, "late reversal", suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrPeriodNotPostable).Once()

	result, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, "late reversal", suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrNoOpenPeriod)
}

func (suite *JournalServiceTestSuite) TestCreateAndPostEntry_CleansUpOnPostFailure() {
	ctx := context.Background()
	cmd := dto.PostJournalEntryCommand{
		EntryDate:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Invoice INV-77",
		CurrencyCode: "USD",
		Lines: []dto.CreateJournalEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.RequireFromString("10")},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.RequireFromString("10")},
		},
		ReferenceType: "INVOICE",
		ReferenceID:   "INV-77",
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsByID(), nil).Once()
	suite.mockJournalRepo.On("SaveDraftEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Reference == "INVOICE:INV-77"
	}), mock.AnythingOfType("[]domain.JournalEntryLine")).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, mock.AnythingOfType("string")).Return(nil, assert.AnError).Once()
	suite.mockJournalRepo.On("DeleteDraftEntry", ctx, suite.tenantID, mock.AnythingOfType("string")).Return(nil).Once()

	result, err := suite.service.CreateAndPostEntry(ctx, suite.tenantID, cmd, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_LoadsLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, CurrencyCode: "USD", Status: domain.EntryPosted}
	lines := []domain.JournalEntryLine{{LineID: uuid.NewString(), EntryID: entryID}}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID, "USD").Return(lines, nil).Once()

	result, err := suite.service.GetEntryByID(ctx, suite.tenantID, entryID)

	suite.Require().NoError(err)
	suite.Len(result.Lines, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesToken() {
	ctx := context.Background()
	inToken := "cursor-in"
	outToken := "cursor-out"
	entries := []domain.JournalEntry{{EntryID: uuid.NewString(), TenantID: suite.tenantID, Status: domain.EntryPosted}}

	suite.mockJournalRepo.On("ListEntriesByTenant", ctx, suite.tenantID, "POSTED", 20, &inToken).Return(entries, &outToken, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListJournalEntriesParams{Status: "POSTED", NextToken: &inToken})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(outToken, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteDraftEntry_Posted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.EntryPosted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteDraftEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotDraft)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
