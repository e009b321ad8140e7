package models

// Tenant is the tenants table row.
type Tenant struct {
	TenantID            string `db:"tenant_id"`
	Name                string `db:"name"`
	DefaultCurrencyCode string `db:"default_currency_code"`
	AuditFields
}
