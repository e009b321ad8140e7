package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/dto"
	"github.com/acmeerp/ledger_core/internal/utils/accounting"
)

var (
	ErrUnbalancedEntry  = errors.New("journal entry debits and credits do not balance")
	ErrInvalidLine      = errors.New("journal entry line is invalid")
	ErrAccountNotActive = errors.New("account is not active")
	ErrCurrencyMismatch = errors.New("line account currency does not match entry currency")
	ErrEntryNotDraft    = errors.New("journal entry is not in draft status")
	ErrEntryNotPosted   = errors.New("journal entry is not posted")
	ErrEntryReversed    = errors.New("journal entry has already been reversed")
	ErrNoOpenPeriod     = errors.New("no open fiscal period contains the entry date")
)

// journalService implements the journal entry lifecycle. Draft validation
// happens here; the atomic balance application lives in the repository's
// posting transaction, which re-validates everything under row locks.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	periodRepo  portsrepo.FiscalPeriodReader
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	periodRepo portsrepo.FiscalPeriodReader,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates the requested lines against the chart of accounts and
// converts them into domain lines with account code/name denormalised onto
// each line. All amounts are coerced into the entry currency at scale 4.
func (s *journalService) buildLines(ctx context.Context, tenantID, entryID, currencyCode, userID string, now time.Time, reqLines []dto.CreateJournalEntryLineRequest) ([]domain.JournalEntryLine, error) {
	accountIDs := make([]string, 0, len(reqLines))
	seen := make(map[string]struct{}, len(reqLines))
	for _, l := range reqLines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			accountIDs = append(accountIDs, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry lines", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to fetch line accounts: %w", err)
	}

	lines := make([]domain.JournalEntryLine, 0, len(reqLines))
	for i, l := range reqLines {
		account, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: line %d references unknown account %s", apperrors.ErrNotFound, i, l.AccountID)
		}
		if !account.IsActive() {
			return nil, fmt.Errorf("%w: %s (%s)", ErrAccountNotActive, account.Code, account.AccountID)
		}
		if account.CurrencyCode != currencyCode {
			return nil, fmt.Errorf("%w: account %s is %s, entry is %s", ErrCurrencyMismatch, account.Code, account.CurrencyCode, currencyCode)
		}

		debit, err := domain.NewMoneyFromDecimal(l.DebitAmount, currencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d debit: %v", ErrInvalidLine, i, err)
		}
		credit, err := domain.NewMoneyFromDecimal(l.CreditAmount, currencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d credit: %v", ErrInvalidLine, i, err)
		}

		lines = append(lines, domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    account.AccountID,
			AccountCode:  account.Code,
			AccountName:  account.Name,
			Description:  l.Description,
			DebitAmount:  debit,
			CreditAmount: credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return lines, nil
}

// CreateEntry validates and persists a new DRAFT entry. Account balances do
// not move until the entry is posted.
func (s *journalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, tenantID, entryID, req.CurrencyCode, userID, now, req.Lines)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit, err := accounting.ValidateEntryBalance(lines, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnbalancedEntry, err)
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		TenantID:     tenantID,
		EntryDate:    req.EntryDate.UTC().Truncate(24 * time.Hour),
		Reference:    req.Reference,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.EntryDraft,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveDraftEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save draft entry", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Draft journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("tenant_id", tenantID),
		slog.Int("lines", len(lines)))
	return &entry, nil
}

// CreateAndPostEntry creates a draft from the command and immediately posts
// it. Used by producing modules that never hold drafts; the draft is cleaned
// up when posting fails so no half-made entry lingers.
func (s *journalService) CreateAndPostEntry(ctx context.Context, tenantID string, cmd dto.PostJournalEntryCommand, userID string) (*domain.JournalEntry, error) {
	reference := cmd.ReferenceID
	if cmd.ReferenceType != "" {
		reference = cmd.ReferenceType + ":" + cmd.ReferenceID
	}

	draft, err := s.CreateEntry(ctx, tenantID, dto.CreateJournalEntryRequest{
		EntryDate:    cmd.EntryDate,
		Reference:    reference,
		Description:  cmd.Description,
		CurrencyCode: cmd.CurrencyCode,
		Lines:        cmd.Lines,
	}, userID)
	if err != nil {
		return nil, err
	}

	postedBy := cmd.PostedBy
	if postedBy == "" {
		postedBy = userID
	}

	posted, err := s.PostEntry(ctx, tenantID, draft.EntryID, postedBy)
	if err != nil {
		if delErr := s.journalRepo.DeleteDraftEntry(ctx, tenantID, draft.EntryID); delErr != nil {
			s.LogError(ctx, delErr, "Failed to clean up draft after posting failure", slog.String("entry_id", draft.EntryID))
		}
		return nil, err
	}
	return posted, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID, entry.CurrencyCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByTenant(ctx, tenantID, params.Status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entries[i].EntryID, entries[i].CurrencyCode)
			if err != nil {
				s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entries[i].EntryID))
				return nil, fmt.Errorf("failed to load entry lines: %w", err)
			}
			entries[i].Lines = lines
		}
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return resp, nil
}

// ListLinesByAccount retrieves a page of posted lines against one account,
// the account's ledger view.
func (s *journalService) ListLinesByAccount(ctx context.Context, tenantID, accountID string, params dto.ListEntryLinesParams) (*dto.ListEntryLinesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, tenantID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list account lines: %w", err)
	}

	resp := &dto.ListEntryLinesResponse{
		Lines:     make([]dto.JournalEntryLineResponse, 0, len(lines)),
		NextToken: nextToken,
	}
	for i := range lines {
		resp.Lines = append(resp.Lines, dto.ToJournalEntryLineResponse(&lines[i]))
	}
	return resp, nil
}

// UpdateDraftEntry edits a DRAFT entry's header and, when Lines is provided,
// replaces the draft's lines wholesale after re-running validation.
func (s *journalService) UpdateDraftEntry(ctx context.Context, tenantID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotDraft, entryID, entry.Status)
	}

	now := time.Now().UTC()
	if req.EntryDate != nil {
		entry.EntryDate = req.EntryDate.UTC().Truncate(24 * time.Hour)
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	lines := entry.Lines
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, tenantID, entryID, entry.CurrencyCode, userID, now, *req.Lines)
		if err != nil {
			return nil, err
		}
		totalDebit, totalCredit, err := accounting.ValidateEntryBalance(lines, entry.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnbalancedEntry, err)
		}
		entry.TotalDebit = totalDebit
		entry.TotalCredit = totalCredit
	} else {
		lines, err = s.journalRepo.FindLinesByEntryID(ctx, entryID, entry.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("failed to load entry lines: %w", err)
		}
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	entry.Lines = lines

	if err := s.journalRepo.ReplaceDraftEntry(ctx, *entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotDraft, entryID)
		}
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.LogInfo(ctx, "Draft journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteDraftEntry removes a DRAFT entry and its lines. Posted entries can
// never be deleted, only reversed.
func (s *journalService) DeleteDraftEntry(ctx context.Context, tenantID, entryID string, userID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsDraft() {
		return fmt.Errorf("%w: entry %s is %s", ErrEntryNotDraft, entryID, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, tenantID, entryID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", ErrEntryNotDraft, entryID)
		}
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.LogInfo(ctx, "Draft journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

// PostEntry atomically applies a DRAFT entry to account balances. The open
// period check runs twice: a fast pre-check here for a friendly error, and
// the authoritative one under row lock inside the posting transaction.
func (s *journalService) PostEntry(ctx context.Context, tenantID, entryID string, postedBy string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotDraft, entryID, entry.Status)
	}

	period, err := s.periodRepo.FindPeriodContaining(ctx, tenantID, entry.EntryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, entry.EntryDate.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to resolve fiscal period", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	if !period.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %s is %s", ErrNoOpenPeriod, period.Name, period.Status)
	}

	posted, err := s.journalRepo.PostEntry(ctx, tenantID, entryID, postedBy, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotDraft, entryID)
		}
		// Period closed between the pre-check above and the row lock.
		if errors.Is(err, apperrors.ErrPeriodNotPostable) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, entry.EntryDate.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", posted.EntryNumber),
		slog.String("posted_by", postedBy))
	return posted, nil
}

// CancelEntry flips a DRAFT entry to CANCELLED. Cancelled entries stay on
// record but never acquire an entry number and never touch balances.
func (s *journalService) CancelEntry(ctx context.Context, tenantID, entryID string, userID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsDraft() {
		return fmt.Errorf("%w: entry %s is %s, use reversal for posted entries", ErrEntryNotDraft, entryID, entry.Status)
	}

	if err := s.journalRepo.CancelDraftEntry(ctx, tenantID, entryID, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", ErrEntryNotDraft, entryID)
		}
		s.LogError(ctx, err, "Failed to cancel journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to cancel journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry cancelled", slog.String("entry_id", entryID), slog.String("cancelled_by", userID))
	return nil
}

// ReverseEntry creates and posts the mirror of a POSTED entry: same accounts
// and amounts with debit/credit swapped, dated with the reversal timestamp.
// The original is stamped with the reversing entry's ID; reversing twice is
// rejected.
func (s *journalService) ReverseEntry(ctx context.Context, tenantID, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsPosted() {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotPosted, entryID, entry.Status)
	}
	if entry.ReversedByEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s reversed by %s", ErrEntryReversed, entryID, *entry.ReversedByEntryID)
	}

	now := time.Now().UTC()
	period, err := s.periodRepo.FindPeriodContaining(ctx, tenantID, now.Truncate(24*time.Hour))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, now.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	if !period.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %s is %s", ErrNoOpenPeriod, period.Name, period.Status)
	}

	reversal, err := s.journalRepo.ReverseEntry(ctx, tenantID, entryID, reason, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrEntryReversed, entryID)
		}
		if errors.Is(err, apperrors.ErrPeriodNotPostable) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, now.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reverse journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversed_by", userID))
	return reversal, nil
}
