package models

import (
	"github.com/shopspring/decimal"
)

// Account is the accounts table row. Monetary columns are NUMERIC scanned into
// decimals; the currency lives in its own column and is reattached when mapping
// to the domain Money type.
type Account struct {
	AccountID       string          `db:"account_id"`
	TenantID        string          `db:"tenant_id"`
	ParentAccountID *string         `db:"parent_account_id"` // NULL for roots
	Code            string          `db:"code"`              // UNIQUE(tenant_id, code)
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	AccountType     string          `db:"account_type"`
	Status          string          `db:"status"`
	IsSystemAccount bool            `db:"is_system_account"`
	CurrencyCode    string          `db:"currency_code"`
	OpeningBalance  decimal.Decimal `db:"opening_balance"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	AuditFields
}
