package domain

// Tenant is the scoping unit for every ledger row. User membership and
// authorization live outside this core; tenants here are a pure registry.
type Tenant struct {
	TenantID            string `json:"tenantID"`
	Name                string `json:"name"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	AuditFields
}
