package dto

import (
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// CreateFiscalPeriodRequest defines the data needed to create a fiscal period.
// Periods are created in DRAFT and must be opened before accepting postings.
type CreateFiscalPeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID      string    `json:"periodID"`
	TenantID      string    `json:"tenantID"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its response DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:      p.PeriodID,
		TenantID:      p.TenantID,
		Name:          p.Name,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListFiscalPeriodResponse converts a slice of periods to response DTOs.
func ToListFiscalPeriodResponse(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	res := make([]FiscalPeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToFiscalPeriodResponse(&p)
	}
	return res
}
