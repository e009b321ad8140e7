package dto

import (
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// CreateTenantRequest defines the data needed to register a tenant.
type CreateTenantRequest struct {
	Name                string `json:"name" binding:"required"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,len=3"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID            string    `json:"tenantID"`
	Name                string    `json:"name"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to its response DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID,
		Name:                t.Name,
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		CreatedAt:           t.CreatedAt,
	}
}
