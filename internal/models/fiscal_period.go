package models

import "time"

// FiscalPeriod is the fiscal_periods table row.
type FiscalPeriod struct {
	PeriodID  string    `db:"period_id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	AuditFields
}
