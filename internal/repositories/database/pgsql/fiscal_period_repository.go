package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	"github.com/acmeerp/ledger_core/internal/models"
	"github.com/acmeerp/ledger_core/internal/utils/mapping"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

const fiscalPeriodColumns = `period_id, tenant_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.TenantID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new fiscal period.
func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (` + fiscalPeriodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.TenantID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal period %s already exists", apperrors.ErrDuplicate, m.PeriodID)
		}
		return fmt.Errorf("failed to save fiscal period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by ID, tenant-scoped.
func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND period_id = $2;`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// FindPeriodContaining returns the non-draft period whose inclusive [start,
// end] range contains date. Opened periods never overlap, so at most one row
// qualifies.
func (r *PgxFiscalPeriodRepository) FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND status <> 'DRAFT' AND start_date <= $2 AND end_date >= $2
		LIMIT 1;
	`
	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period containing %s: %w", date.Format("2006-01-02"), err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// FindOverlapping returns non-draft periods (excluding excludeID) whose date
// range intersects [startDate, endDate].
func (r *PgxFiscalPeriodRepository) FindOverlapping(ctx context.Context, tenantID string, startDate, endDate time.Time, excludeID string) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1
		  AND period_id <> $2
		  AND status <> 'DRAFT'
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, excludeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping fiscal periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}

// ListPeriods retrieves all periods for a tenant ordered by start date.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}

// TransitionPeriodStatus flips a period between lifecycle states under an
// exclusive row lock. Posting locks the same row, so a close can never slip
// between a poster's period check and its balance writes.
func (r *PgxFiscalPeriodRepository) TransitionPeriodStatus(ctx context.Context, tenantID, periodID string, expectedStatuses []domain.PeriodStatus, target domain.PeriodStatus, userID string, now time.Time) (*domain.FiscalPeriod, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND period_id = $2
		FOR UPDATE;
	`
	m, err := scanFiscalPeriod(tx.QueryRow(ctx, lockQuery, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock fiscal period %s: %w", periodID, err)
	}

	expected := false
	for _, status := range expectedStatuses {
		if m.Status == string(status) {
			expected = true
			break
		}
	}
	if !expected {
		return nil, fmt.Errorf("%w: fiscal period %s is %s", apperrors.ErrConflict, periodID, m.Status)
	}

	updateQuery := `
		UPDATE fiscal_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND period_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, tenantID, periodID, string(target), now, userID); err != nil {
		return nil, fmt.Errorf("failed to transition fiscal period %s to %s: %w", periodID, target, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = string(target)
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}
