package services

import (
	"context"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/dto"
)

// JournalSvcFacade defines the journal entry lifecycle: draft creation and
// editing, posting, cancellation and reversal, plus read access.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a new DRAFT entry. No balance moves.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// CreateAndPostEntry is the command form used by producing modules: the
	// draft is created and posted in one call.
	CreateAndPostEntry(ctx context.Context, tenantID string, cmd dto.PostJournalEntryCommand, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListLinesByAccount retrieves a page of posted lines against one account.
	ListLinesByAccount(ctx context.Context, tenantID, accountID string, params dto.ListEntryLinesParams) (*dto.ListEntryLinesResponse, error)

	// UpdateDraftEntry edits a DRAFT entry's header and optionally replaces its lines.
	UpdateDraftEntry(ctx context.Context, tenantID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraftEntry removes a DRAFT entry.
	DeleteDraftEntry(ctx context.Context, tenantID, entryID string, userID string) error

	// PostEntry atomically applies a DRAFT entry to account balances.
	PostEntry(ctx context.Context, tenantID, entryID string, postedBy string) (*domain.JournalEntry, error)

	// CancelEntry flips a DRAFT entry to CANCELLED; posted entries are reversed instead.
	CancelEntry(ctx context.Context, tenantID, entryID string, userID string) error

	// ReverseEntry creates and posts the reversing entry for a POSTED original.
	ReverseEntry(ctx context.Context, tenantID, entryID string, reason string, userID string) (*domain.JournalEntry, error)
}
