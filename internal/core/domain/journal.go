package domain

import "time"

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// JournalEntry is the unit of double-entry bookkeeping: a draft until posted,
// immutable afterward. EntryNumber is assigned inside the posting transaction
// from a tenant-scoped monotonically increasing sequence.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	TenantID          string      `json:"tenantID"`
	EntryNumber       int64       `json:"entryNumber"` // 0 until posted
	EntryDate         time.Time   `json:"entryDate"`
	Reference         string      `json:"reference"` // optional caller reference
	Description       string      `json:"description"`
	CurrencyCode      string      `json:"currencyCode"`
	Status            EntryStatus `json:"status"`
	TotalDebit        Money       `json:"totalDebit"`
	TotalCredit       Money       `json:"totalCredit"`
	Lines             []JournalEntryLine `json:"lines,omitempty"`
	PostedAt          *time.Time  `json:"postedAt,omitempty"`
	PostedBy          string      `json:"postedBy,omitempty"`
	ReversalOfEntryID *string     `json:"reversalOfEntryID,omitempty"` // set on the reversing entry
	ReversedByEntryID *string     `json:"reversedByEntryID,omitempty"` // stamped on the original; not a status change
	AuditFields
}

// IsDraft reports whether the entry is still mutable.
func (e *JournalEntry) IsDraft() bool {
	return e.Status == EntryDraft
}

// IsPosted reports whether the entry has taken financial effect.
func (e *JournalEntry) IsPosted() bool {
	return e.Status == EntryPosted
}

// JournalEntryLine is a single debit or credit against one account.
// Exactly one of DebitAmount/CreditAmount is strictly positive, the other is
// exactly zero. AccountCode and AccountName are denormalized at line creation
// so the audit trail survives later account renames.
type JournalEntryLine struct {
	LineID       string `json:"lineID"`
	EntryID      string `json:"entryID"`
	AccountID    string `json:"accountID"`
	AccountCode  string `json:"accountCode"`
	AccountName  string `json:"accountName"`
	Description  string `json:"description"`
	DebitAmount  Money  `json:"debitAmount"`
	CreditAmount Money  `json:"creditAmount"`
	AuditFields
}

// IsDebit reports whether the line sits on the debit side.
func (l *JournalEntryLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Side returns the normal-balance side this line sits on.
func (l *JournalEntryLine) Side() NormalBalance {
	if l.IsDebit() {
		return DebitNormal
	}
	return CreditNormal
}

// Amount returns the positive amount of the line regardless of side.
func (l *JournalEntryLine) Amount() Money {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
