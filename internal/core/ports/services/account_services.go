package services

import (
	"context"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/dto"
)

// AccountSvcFacade defines chart-of-accounts operations exposed to handlers
// and to the posting engine.
type AccountSvcFacade interface {
	// CreateAccount creates a new account in the tenant's chart of accounts.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts with optional filters.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)

	// UpdateAccountMetadata updates name/description/status; never balances.
	UpdateAccountMetadata(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account that has no posted lines and no children.
	DeleteAccount(ctx context.Context, tenantID, accountID string, userID string) error
}
