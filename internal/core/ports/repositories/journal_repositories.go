package repositories

import (
	"context"
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry (without lines), tenant-scoped.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string, currencyCode string) ([]domain.JournalEntryLine, error)

	// ListEntriesByTenant retrieves a page of entries using token pagination,
	// newest entry date first. An empty status filters nothing.
	ListEntriesByTenant(ctx context.Context, tenantID string, status string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccountID retrieves a page of posted lines against one account,
	// the account's ledger view.
	ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error)
}

// JournalEntryWriter defines mutations available while an entry is DRAFT.
type JournalEntryWriter interface {
	// SaveDraftEntry persists a new DRAFT entry with its lines.
	SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// ReplaceDraftEntry updates the draft's header and replaces its lines.
	// Returns apperrors.ErrConflict if the entry is no longer DRAFT.
	ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// DeleteDraftEntry removes a DRAFT entry and its lines.
	// Returns apperrors.ErrConflict if the entry is no longer DRAFT.
	DeleteDraftEntry(ctx context.Context, tenantID, entryID string) error

	// CancelDraftEntry flips a DRAFT entry to CANCELLED.
	// Returns apperrors.ErrConflict if the entry is no longer DRAFT.
	CancelDraftEntry(ctx context.Context, tenantID, entryID, userID string, now time.Time) error
}

// JournalEntryPoster is the persistence half of the posting engine. Both
// operations run in a single database transaction: entry row locked and
// re-validated, open period confirmed under lock, account rows locked in
// stable account_id order, balances applied, entry number assigned, status
// flipped. Partial application is never observable.
type JournalEntryPoster interface {
	// PostEntry atomically posts a DRAFT entry and returns it as POSTED.
	// Returns apperrors.ErrConflict if the entry is not DRAFT, and
	// domain-level period errors when no OPEN period contains the entry date.
	PostEntry(ctx context.Context, tenantID, entryID, postedBy string, now time.Time) (*domain.JournalEntry, error)

	// ReverseEntry atomically creates and posts the reversing entry for a
	// POSTED original (sides swapped, reversalOfEntryID linked) and stamps the
	// original with reversedByEntryID. Returns the new posted entry.
	ReverseEntry(ctx context.Context, tenantID, originalEntryID, reason, userID string, now time.Time) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalEntryPoster
}
