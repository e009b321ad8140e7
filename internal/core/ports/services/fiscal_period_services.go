package services

import (
	"context"
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/dto"
)

// FiscalPeriodSvcFacade defines the fiscal period lifecycle.
type FiscalPeriodSvcFacade interface {
	// CreatePeriod creates a period in DRAFT.
	CreatePeriod(ctx context.Context, tenantID string, req dto.CreateFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// GetPeriodByID retrieves a single period.
	GetPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods for a tenant ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error)

	// FindPeriodContaining returns the period containing date, or nil.
	FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// OpenPeriod transitions DRAFT -> OPEN after checking for overlaps.
	// A CLOSED period goes back to OPEN through ReopenPeriod.
	OpenPeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error)

	// ClosePeriod transitions OPEN -> CLOSED. Closing never validates the trial
	// balance; an imbalance is an operator alarm, not a transition guard.
	ClosePeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error)

	// ReopenPeriod transitions CLOSED -> OPEN.
	ReopenPeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error)

	// LockPeriod transitions CLOSED -> LOCKED. Terminal.
	LockPeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error)
}
