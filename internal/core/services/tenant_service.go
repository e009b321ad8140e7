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

// tenantService implements the tenant registry.
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new tenant service.
func NewTenantService(repo portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: repo}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant registers a new tenant with its default currency.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error) {
	now := time.Now().UTC()
	tenant := domain.Tenant{
		TenantID:            uuid.NewString(),
		Name:                req.Name,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "Failed to save tenant", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.LogInfo(ctx, "Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("name", tenant.Name))
	return &tenant, nil
}

// GetTenantByID retrieves a tenant.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tenant", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	return tenant, nil
}

// ListTenants retrieves all registered tenants.
func (s *tenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenants(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants")
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}
