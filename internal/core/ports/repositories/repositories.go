package repositories

// RepositoryProvider bundles every repository the service layer needs.
// Wired once at startup by the pgsql container.
type RepositoryProvider struct {
	TenantRepo       TenantRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	FiscalPeriodRepo FiscalPeriodRepositoryFacade
	ReportingRepo    ReportingRepository
}
