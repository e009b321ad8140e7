package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/dto"
)

var (
	ErrDuplicateAccountCode = errors.New("account code already exists for tenant")
	ErrInvalidParent        = errors.New("parent account does not exist or belongs to a different tenant")
	ErrAccountInUse         = errors.New("account has posted lines or child accounts")
	ErrSystemAccount        = errors.New("system accounts cannot be deleted")
)

// accountService implements chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	tenantRepo  portsrepo.TenantReader
}

// AccountServiceOption is a functional option for configuring the account service.
type AccountServiceOption func(*accountService)

// WithTenantReader sets the tenant reader used to verify tenant existence.
func WithTenantReader(repo portsrepo.TenantReader) AccountServiceOption {
	return func(s *accountService) {
		s.tenantRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in the tenant's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if s.tenantRepo != nil {
		if _, err := s.tenantRepo.FindTenantByID(ctx, tenantID); err != nil {
			s.LogWarn(ctx, "Tenant not found for account creation", slog.String("tenant_id", tenantID))
			return nil, fmt.Errorf("tenant %s: %w", tenantID, err)
		}
	}

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	// Code must be unique per tenant
	existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %q", ErrDuplicateAccountCode, req.Code)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidParent, parentID)
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, fmt.Errorf("failed to find parent account: %w", err)
		}
		if parent.TenantID != tenantID {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParent, parentID)
		}
	}

	opening, err := domain.NewMoneyFromDecimal(req.OpeningBalance, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.AccountType.IsTemporary() && !opening.IsZero() {
		return nil, fmt.Errorf("%w: %s accounts must open with a zero balance", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		ParentAccountID: parentID,
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		AccountType:     req.AccountType,
		Status:          domain.AccountActive,
		IsSystemAccount: req.IsSystemAccount,
		CurrencyCode:    req.CurrencyCode,
		OpeningBalance:  opening,
		// currentBalance starts at the opening balance; only the posting
		// engine moves it afterwards.
		CurrentBalance: opening,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code %q", ErrDuplicateAccountCode, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code), slog.String("tenant_id", tenantID))
	return &account, nil
}

// GetAccountByID retrieves a single account, tenant-scoped.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts with optional type/status filters.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, params.AccountType, params.Status, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccountMetadata updates name/description/status. The balance columns
// are untouchable through this path.
func (s *accountService) UpdateAccountMetadata(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && *req.Name != account.Name {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil && *req.Description != account.Description {
		account.Description = *req.Description
		updated = true
	}
	if req.Status != nil && *req.Status != account.Status {
		account.Status = *req.Status
		updated = true
	}

	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccountMetadata(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account metadata", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account metadata updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account. Deletion is forbidden when the account
// carries any posted line, has children, or is a system account.
func (s *accountService) DeleteAccount(ctx context.Context, tenantID, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystemAccount {
		return fmt.Errorf("%w: %s", ErrSystemAccount, accountID)
	}

	hasLines, err := s.accountRepo.HasPostedLines(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check posted lines", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if hasLines {
		return fmt.Errorf("%w: account %s has posted lines", ErrAccountInUse, accountID)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check child accounts: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has child accounts", ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("deleted_by", userID))
	return nil
}
