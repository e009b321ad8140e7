package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TenantRepo:       newPgxTenantRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		FiscalPeriodRepo: newPgxFiscalPeriodRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
