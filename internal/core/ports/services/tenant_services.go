package services

import (
	"context"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/dto"
)

// TenantSvcFacade defines tenant registry operations.
type TenantSvcFacade interface {
	// CreateTenant registers a new tenant.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error)

	// GetTenantByID retrieves a tenant.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all tenants.
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}
