package dto

import (
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryLineRequest is one debit or credit line of a draft entry.
// Exactly one of debitAmount/creditAmount must be strictly positive.
type CreateJournalEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateJournalEntryRequest defines the data needed to create a draft journal entry.
type CreateJournalEntryRequest struct {
	EntryDate    time.Time                       `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Reference    string                          `json:"reference"`
	Description  string                          `json:"description" binding:"required"`
	CurrencyCode string                          `json:"currencyCode" binding:"required,len=3"`
	Lines        []CreateJournalEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalEntryCommand is the create-and-post form used by producing modules
// (sales, payroll, procurement) that never hold drafts. ReferenceType/ReferenceID
// link back to the caller's own document; this core never dereferences them.
type PostJournalEntryCommand struct {
	EntryDate     time.Time                       `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description   string                          `json:"description" binding:"required"`
	CurrencyCode  string                          `json:"currencyCode" binding:"required,len=3"`
	Lines         []CreateJournalEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	ReferenceType string                          `json:"referenceType"`
	ReferenceID   string                          `json:"referenceID"`
	PostedBy      string                          `json:"postedBy"`
}

// UpdateJournalEntryRequest defines the fields editable while an entry is DRAFT.
// Providing Lines replaces the draft's lines wholesale and re-runs validation.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time                       `json:"entryDate" time_format:"2006-01-02"`
	Reference   *string                          `json:"reference"`
	Description *string                          `json:"description"`
	Lines       *[]CreateJournalEntryLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// ReverseJournalEntryRequest carries the operator's reason for a reversal.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalEntryLineResponse defines the data returned for an entry line.
type JournalEntryLineResponse struct {
	LineID       string `json:"lineID"`
	AccountID    string `json:"accountID"`
	AccountCode  string `json:"accountCode"`
	AccountName  string `json:"accountName"`
	Description  string `json:"description"`
	DebitAmount  string `json:"debitAmount"`
	CreditAmount string `json:"creditAmount"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                     `json:"entryID"`
	TenantID          string                     `json:"tenantID"`
	EntryNumber       int64                      `json:"entryNumber,omitempty"`
	EntryDate         time.Time                  `json:"entryDate"`
	Reference         string                     `json:"reference,omitempty"`
	Description       string                     `json:"description"`
	CurrencyCode      string                     `json:"currencyCode"`
	Status            string                     `json:"status"`
	TotalDebit        string                     `json:"totalDebit"`
	TotalCredit       string                     `json:"totalCredit"`
	Lines             []JournalEntryLineResponse `json:"lines,omitempty"`
	PostedAt          *time.Time                 `json:"postedAt,omitempty"`
	PostedBy          string                     `json:"postedBy,omitempty"`
	ReversalOfEntryID *string                    `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string                    `json:"reversedByEntryID,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	CreatedBy         string                     `json:"createdBy"`
}

// ToJournalEntryLineResponse converts a domain line to its response DTO.
func ToJournalEntryLineResponse(l *domain.JournalEntryLine) JournalEntryLineResponse {
	return JournalEntryLineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		AccountCode:  l.AccountCode,
		AccountName:  l.AccountName,
		Description:  l.Description,
		DebitAmount:  l.DebitAmount.String(),
		CreditAmount: l.CreditAmount.String(),
	}
}

// ToJournalEntryResponse converts a domain entry (with lines, if loaded) to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToJournalEntryLineResponse(&e.Lines[i])
	}
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		TenantID:          e.TenantID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		Reference:         e.Reference,
		Description:       e.Description,
		CurrencyCode:      e.CurrencyCode,
		Status:            string(e.Status),
		TotalDebit:        e.TotalDebit.String(),
		TotalCredit:       e.TotalCredit.String(),
		Lines:             lines,
		PostedAt:          e.PostedAt,
		PostedBy:          e.PostedBy,
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
	Status       string  `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	IncludeLines bool    `form:"includeLines,default=false"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListEntryLinesParams defines query parameters for an account's ledger view.
type ListEntryLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntryLinesResponse wraps a page of entry lines for one account.
type ListEntryLinesResponse struct {
	Lines     []JournalEntryLineResponse `json:"lines"`
	NextToken *string                    `json:"nextToken,omitempty"`
}
