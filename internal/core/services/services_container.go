package services

import (
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
)

// NewServiceContainer wires every application service onto the repository
// provider. Called once at startup.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Tenant:       NewTenantService(repos.TenantRepo),
		Account:      NewAccountService(repos.AccountRepo, WithTenantReader(repos.TenantRepo)),
		Journal:      NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.FiscalPeriodRepo),
		FiscalPeriod: NewFiscalPeriodService(repos.FiscalPeriodRepo),
		Reporting:    NewReportingService(repos.ReportingRepo),
	}
}
