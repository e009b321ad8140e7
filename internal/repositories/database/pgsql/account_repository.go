package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	"github.com/acmeerp/ledger_core/internal/models"
	"github.com/acmeerp/ledger_core/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, parent_account_id, code, name, description, account_type, status, is_system_account, currency_code, opening_balance, current_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.ParentAccountID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.AccountType,
		&m.Status,
		&m.IsSystemAccount,
		&m.CurrencyCode,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. The (tenant_id, code) pair is unique.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.ParentAccountID,
		m.Code,
		m.Name,
		m.Description,
		m.AccountType,
		m.Status,
		m.IsSystemAccount,
		m.CurrencyCode,
		m.OpeningBalance,
		m.CurrentBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s already exists for tenant %s", apperrors.ErrDuplicate, m.Code, m.TenantID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, tenant-scoped.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	account, err := mapping.ToDomainAccount(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map account %s: %w", accountID, err)
	}
	return &account, nil
}

// FindAccountByCode retrieves an account by its tenant-scoped code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}

	account, err := mapping.ToDomainAccount(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map account %s: %w", m.AccountID, err)
	}
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs, keyed by ID.
// Missing IDs are simply absent from the map; the caller decides whether
// that matters.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		account, err := mapping.ToDomainAccount(m)
		if err != nil {
			return nil, fmt.Errorf("failed to map account %s: %w", m.AccountID, err)
		}
		accountsMap[account.AccountID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves accounts for a tenant with optional type/status
// filters, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType, status string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1
		  AND ($2 = '' OR account_type = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY code
		LIMIT $4 OFFSET $5;`

	rows, err := r.Pool.Query(ctx, query, tenantID, accountType, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for tenant %s: %w", tenantID, err)
		}
		account, err := mapping.ToDomainAccount(m)
		if err != nil {
			return nil, fmt.Errorf("failed to map account %s: %w", m.AccountID, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for tenant %s: %w", tenantID, err)
	}
	return accounts, nil
}

// HasChildren reports whether any account references accountID as its parent.
func (r *PgxAccountRepository) HasChildren(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE tenant_id = $1 AND parent_account_id = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check children of account %s: %w", accountID, err)
	}
	return exists, nil
}

// HasPostedLines reports whether any posted journal entry line references accountID.
func (r *PgxAccountRepository) HasPostedLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check posted lines of account %s: %w", accountID, err)
	}
	return exists, nil
}

// UpdateAccountMetadata updates name, description and status. Balance columns
// stay untouched; only the posting transaction moves them.
func (r *PgxAccountRepository) UpdateAccountMetadata(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $3, description = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND account_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.AccountID,
		m.Name,
		m.Description,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row. The service layer has already
// verified the account has no posted lines and no children.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	query := `DELETE FROM accounts WHERE tenant_id = $1 AND account_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign key violation
			return fmt.Errorf("%w: account %s is referenced by journal entry lines", apperrors.ErrConflict, accountID)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
