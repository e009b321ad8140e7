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

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

const tenantColumns = `tenant_id, name, default_currency_code, created_at, created_by, last_updated_at, last_updated_by`

func scanTenant(row pgx.Row) (models.Tenant, error) {
	var m models.Tenant
	err := row.Scan(
		&m.TenantID,
		&m.Name,
		&m.DefaultCurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTenant inserts a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)

	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Name,
		m.DefaultCurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tenant %s already exists", apperrors.ErrDuplicate, m.TenantID)
		}
		return fmt.Errorf("failed to save tenant %s: %w", m.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its unique identifier.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`

	m, err := scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}

	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

// ListTenants retrieves all registered tenants ordered by name.
func (r *PgxTenantRepository) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		m, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, mapping.ToDomainTenant(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return tenants, nil
}
