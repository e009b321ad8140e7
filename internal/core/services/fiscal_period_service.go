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

var (
	ErrInvalidPeriodRange = errors.New("period end date must not be before start date")
	ErrOverlappingPeriod  = errors.New("period overlaps an existing period for tenant")
	ErrPeriodNotOpen      = errors.New("fiscal period is not open")
	ErrPeriodNotClosed    = errors.New("fiscal period is not closed")
	ErrPeriodLocked       = errors.New("fiscal period is locked")
)

// fiscalPeriodService drives the DRAFT -> OPEN -> CLOSED <-> OPEN -> LOCKED
// period lifecycle. Status transitions run under an exclusive lock on the
// period row so they share a consistency boundary with posting validation.
type fiscalPeriodService struct {
	BaseService
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
}

// NewFiscalPeriodService creates a new fiscal period service.
func NewFiscalPeriodService(repo portsrepo.FiscalPeriodRepositoryFacade) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{periodRepo: repo}
}

var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

// CreatePeriod creates a period in DRAFT. Overlap is not checked until the
// period opens; drafts are invisible to posting.
func (s *fiscalPeriodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreateFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	startDate := req.StartDate.UTC().Truncate(24 * time.Hour)
	endDate := req.EndDate.UTC().Truncate(24 * time.Hour)
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: %s .. %s", ErrInvalidPeriodRange, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  tenantID,
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.PeriodDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal period", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("tenant_id", tenantID))
	return &period, nil
}

// GetPeriodByID retrieves a single period.
func (s *fiscalPeriodService) GetPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal period", slog.String("period_id", periodID))
		}
		return nil, err
	}
	return period, nil
}

// ListPeriods retrieves all periods for a tenant ordered by start date.
func (s *fiscalPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}

// FindPeriodContaining returns the period containing date, or nil if none.
func (s *fiscalPeriodService) FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodContaining(ctx, tenantID, date.UTC().Truncate(24*time.Hour))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to find containing fiscal period", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to find fiscal period: %w", err)
	}
	return period, nil
}

// OpenPeriod transitions DRAFT -> OPEN after verifying no other non-draft
// period for the tenant overlaps its date range.
func (s *fiscalPeriodService) OpenPeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: %s", ErrPeriodLocked, periodID)
	}

	overlapping, err := s.periodRepo.FindOverlapping(ctx, tenantID, period.StartDate, period.EndDate, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period overlap", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: conflicts with period %s", ErrOverlappingPeriod, overlapping[0].PeriodID)
	}

	updated, err := s.periodRepo.TransitionPeriodStatus(ctx, tenantID, periodID,
		[]domain.PeriodStatus{domain.PeriodDraft}, domain.PeriodOpen, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrConflict, periodID, period.Status)
		}
		s.LogError(ctx, err, "Failed to open fiscal period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to open fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period opened", slog.String("period_id", periodID), slog.String("tenant_id", tenantID))
	return updated, nil
}

// ClosePeriod transitions OPEN -> CLOSED. Closing never validates the trial
// balance: an imbalance is surfaced by the statement engine as an operator
// alarm, not enforced here.
func (s *fiscalPeriodService) ClosePeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error) {
	updated, err := s.periodRepo.TransitionPeriodStatus(ctx, tenantID, periodID,
		[]domain.PeriodStatus{domain.PeriodOpen}, domain.PeriodClosed, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrPeriodNotOpen, periodID)
		}
		s.LogError(ctx, err, "Failed to close fiscal period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period closed", slog.String("period_id", periodID), slog.String("tenant_id", tenantID))
	return updated, nil
}

// ReopenPeriod transitions CLOSED -> OPEN. A LOCKED period can never reopen.
func (s *fiscalPeriodService) ReopenPeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: %s", ErrPeriodLocked, periodID)
	}

	updated, err := s.periodRepo.TransitionPeriodStatus(ctx, tenantID, periodID,
		[]domain.PeriodStatus{domain.PeriodClosed}, domain.PeriodOpen, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrPeriodNotClosed, periodID)
		}
		s.LogError(ctx, err, "Failed to reopen fiscal period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to reopen fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period reopened", slog.String("period_id", periodID), slog.String("tenant_id", tenantID))
	return updated, nil
}

// LockPeriod transitions CLOSED -> LOCKED. Terminal: no reopen, no postings
// of any kind afterwards, reversals included.
func (s *fiscalPeriodService) LockPeriod(ctx context.Context, tenantID, periodID string, userID string) (*domain.FiscalPeriod, error) {
	updated, err := s.periodRepo.TransitionPeriodStatus(ctx, tenantID, periodID,
		[]domain.PeriodStatus{domain.PeriodClosed}, domain.PeriodLocked, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrPeriodNotClosed, periodID)
		}
		s.LogError(ctx, err, "Failed to lock fiscal period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to lock fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period locked", slog.String("period_id", periodID), slog.String("tenant_id", tenantID))
	return updated, nil
}
