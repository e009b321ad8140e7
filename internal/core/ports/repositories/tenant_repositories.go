package repositories

import (
	"context"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// TenantReader defines read operations for tenant registry data.
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all registered tenants.
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant registry data.
type TenantWriter interface {
	// SaveTenant inserts a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error
}

// TenantRepositoryFacade combines all tenant repository interfaces.
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
