package repositories

import (
	"context"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier, tenant-scoped.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its tenant-scoped code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by ID, keyed by account ID.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for a tenant with optional type/status filters.
	ListAccounts(ctx context.Context, tenantID string, accountType, status string, limit, offset int) ([]domain.Account, error)

	// HasChildren reports whether any account references accountID as its parent.
	HasChildren(ctx context.Context, tenantID, accountID string) (bool, error)

	// HasPostedLines reports whether any posted journal entry line references accountID.
	HasPostedLines(ctx context.Context, tenantID, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
// Balance columns are out of reach here: only the posting engine moves them,
// inside its own transaction.
type AccountWriter interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when the
	// (tenantID, code) pair already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountMetadata updates name, description and status.
	UpdateAccountMetadata(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row. Callers must have verified the
	// account has no posted lines and no children.
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
