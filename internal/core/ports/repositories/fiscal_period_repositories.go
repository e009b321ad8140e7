package repositories

import (
	"context"
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data.
type FiscalPeriodReader interface {
	// FindPeriodByID retrieves a period by ID, tenant-scoped.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodContaining returns the period whose [start, end] contains date,
	// or apperrors.ErrNotFound.
	FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// FindOverlapping returns periods (any status except DRAFT, excluding
	// excludeID) whose date range intersects [startDate, endDate].
	FindOverlapping(ctx context.Context, tenantID string, startDate, endDate time.Time, excludeID string) ([]domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods for a tenant ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data.
type FiscalPeriodWriter interface {
	// SavePeriod inserts a new period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// TransitionPeriodStatus flips a period from one of expectedStatuses to
	// target, taking an exclusive lock on the period row for the duration of
	// its transaction so it shares a consistency boundary with posting.
	// Returns apperrors.ErrConflict when the current status is not expected.
	TransitionPeriodStatus(ctx context.Context, tenantID, periodID string, expectedStatuses []domain.PeriodStatus, target domain.PeriodStatus, userID string, now time.Time) (*domain.FiscalPeriod, error)
}

// FiscalPeriodRepositoryFacade combines all fiscal period repository interfaces.
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
