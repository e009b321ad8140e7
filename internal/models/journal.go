package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
// entry_number is NULL until the entry posts; UNIQUE(tenant_id, entry_number).
type JournalEntry struct {
	EntryID           string          `db:"entry_id"`
	TenantID          string          `db:"tenant_id"`
	EntryNumber       *int64          `db:"entry_number"`
	EntryDate         time.Time       `db:"entry_date"`
	Reference         string          `db:"reference"`
	Description       string          `db:"description"`
	CurrencyCode      string          `db:"currency_code"`
	Status            string          `db:"status"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	PostedAt          *time.Time      `db:"posted_at"`
	PostedBy          *string         `db:"posted_by"`
	ReversalOfEntryID *string         `db:"reversal_of_entry_id"`
	ReversedByEntryID *string         `db:"reversed_by_entry_id"`
	AuditFields
}

// JournalEntryLine is the journal_entry_lines table row. account_code and
// account_name are denormalized at insert time for audit stability.
type JournalEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	AccountCode  string          `db:"account_code"`
	AccountName  string          `db:"account_name"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	AuditFields
}
