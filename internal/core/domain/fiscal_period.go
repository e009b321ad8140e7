package domain

import "time"

// PeriodStatus is the lifecycle state of a fiscal period.
// Transitions: DRAFT -> OPEN -> CLOSED <-> OPEN, and OPEN|CLOSED -> LOCKED.
// LOCKED is terminal: no further transitions and no postings of any kind,
// reversals included.
type PeriodStatus string

const (
	PeriodDraft  PeriodStatus = "DRAFT"
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod is a bounded date range that gates whether postings dated
// within it are currently allowed. Periods for a tenant never overlap.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`
	TenantID  string       `json:"tenantID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether date falls inside [StartDate, EndDate].
// Bounds are compared at day granularity; callers normalize dates to UTC midnight.
func (p *FiscalPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Overlaps reports whether the date ranges of p and other intersect.
func (p *FiscalPeriod) Overlaps(other *FiscalPeriod) bool {
	return !p.StartDate.After(other.EndDate) && !other.StartDate.After(p.EndDate)
}

// AcceptsPostings reports whether entries dated inside the period may post now.
func (p *FiscalPeriod) AcceptsPostings() bool {
	return p.Status == PeriodOpen
}
