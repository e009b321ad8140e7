package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	"github.com/acmeerp/ledger_core/internal/models"
	"github.com/acmeerp/ledger_core/internal/utils/accounting"
	"github.com/acmeerp/ledger_core/internal/utils/mapping"
	"github.com/acmeerp/ledger_core/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `entry_id, tenant_id, entry_number, entry_date, reference, description, currency_code, status, total_debit, total_credit, posted_at, posted_by, reversal_of_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, entry_id, account_id, account_code, account_name, description, debit_amount, credit_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedAt,
		&m.PostedBy,
		&m.ReversalOfEntryID,
		&m.ReversedByEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanJournalLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.AccountCode,
		&m.AccountName,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// --- Reader ---

// FindEntryByID retrieves an entry (without lines), tenant-scoped.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry, err := mapping.ToDomainJournalEntry(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map journal entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string, currencyCode string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalEntryLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	lines, err := mapping.ToDomainJournalEntryLineSlice(modelLines, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to map lines for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// ListEntriesByTenant retrieves a page of entries using token pagination,
// newest entry date first.
func (r *PgxJournalRepository) ListEntriesByTenant(ctx context.Context, tenantID string, status string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{tenantID, status}
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)`

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (entry_date, created_at) < ($3, $4)`
		args = append(args, entryDate, createdAt)
	}

	query += fmt.Sprintf(`
		ORDER BY entry_date DESC, created_at DESC
		LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entry, err := mapping.ToDomainJournalEntry(m)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to map journal entry %s: %w", m.EntryID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// ListLinesByAccountID retrieves a page of posted lines against one account,
// newest first.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{tenantID, accountID}
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.account_code, l.account_name, l.description, l.debit_amount, l.credit_amount, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, e.currency_code
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'`

	if nextToken != nil && *nextToken != "" {
		createdAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND l.created_at < $3`
		args = append(args, createdAt)
	}

	query += fmt.Sprintf(`
		ORDER BY l.created_at DESC, l.line_id DESC
		LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var m models.JournalEntryLine
		var currencyCode string
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&currencyCode,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan line row for account %s: %w", accountID, err)
		}
		line, err := mapping.ToDomainJournalEntryLine(m, currencyCode)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to map line %s: %w", m.LineID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating line rows for account %s: %w", accountID, err)
	}

	var token *string
	if len(lines) > limit {
		lines = lines[:limit]
		t := pagination.EncodeDateBasedToken(lines[len(lines)-1].CreatedAt)
		token = &t
	}
	return lines, token, nil
}

// --- Writer ---

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLine) error {
	query := `
		INSERT INTO journal_entry_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.AccountCode,
			m.AccountName,
			m.Description,
			m.DebitAmount,
			m.CreditAmount,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert line %s: %w", lines[i].LineID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close line insert batch: %w", err)
	}
	return batchErr
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.TenantID,
		m.EntryNumber,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.CurrencyCode,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.PostedAt,
		m.PostedBy,
		m.ReversalOfEntryID,
		m.ReversedByEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

// SaveDraftEntry persists a new DRAFT entry with its lines.
func (r *PgxJournalRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(entry)); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceDraftEntry updates the draft's header and replaces its lines.
// The guarded UPDATE doubles as the draft check: posting holds the entry row
// lock, so this blocks rather than racing it.
func (r *PgxJournalRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $3, reference = $4, description = $5, total_debit = $6, total_credit = $7, last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.TenantID,
		m.EntryID,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftMissingError(ctx, m.TenantID, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines of draft entry %s: %w", m.EntryID, err)
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a DRAFT entry and its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, tenantID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';`, tenantID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete draft entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftMissingError(ctx, tenantID, entryID)
	}
	return r.Commit(ctx, tx)
}

// CancelDraftEntry flips a DRAFT entry to CANCELLED.
func (r *PgxJournalRepository) CancelDraftEntry(ctx context.Context, tenantID, entryID, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'CANCELLED', last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftMissingError(ctx, tenantID, entryID)
	}
	return nil
}

// draftMissingError distinguishes "entry does not exist" from "entry exists
// but is no longer DRAFT".
func (r *PgxJournalRepository) draftMissingError(ctx context.Context, tenantID, entryID string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check status of entry %s: %w", entryID, err)
	}
	return fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entryID, status)
}

// --- Poster ---

// lockedAccount is the slice of account state the posting transaction needs.
type lockedAccount struct {
	accountID   string
	accountType domain.AccountType
	status      string
	currency    string
}

// lockAccountRows locks the given accounts FOR UPDATE in ascending account_id
// order. Every concurrent poster acquires locks in the same order, which rules
// out deadlock between postings that share accounts.
func lockAccountRows(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]lockedAccount, error) {
	sorted := append([]string(nil), accountIDs...)
	sort.Strings(sorted)

	query := `
		SELECT account_id, account_type, status, currency_code
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, tenantID, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account rows: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]lockedAccount, len(sorted))
	for rows.Next() {
		var a lockedAccount
		if err := rows.Scan(&a.accountID, &a.accountType, &a.status, &a.currency); err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[a.accountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(locked) != len(sorted) {
		missing := []string{}
		for _, id := range sorted {
			if _, ok := locked[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not lock accounts %v", apperrors.ErrNotFound, missing)
	}
	return locked, nil
}

// applyBalanceChanges applies per-account signed deltas to the locked rows.
func applyBalanceChanges(ctx context.Context, tx pgx.Tx, tenantID string, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET current_balance = current_balance + $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND account_id = $2;
	`
	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(changes))
	for accountID, delta := range changes {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, tenantID, accountID, delta, now, userID)
		accountIDs = append(accountIDs, accountID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to update balance of account %s: %w", accountIDs[i], err)
		} else if err == nil && ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s vanished during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}

// nextEntryNumber allocates the tenant's next journal entry number. The
// upsert serializes concurrent posters on the sequence row, so numbers are
// dense per tenant except when a posting transaction aborts after claiming
// one.
func nextEntryNumber(ctx context.Context, tx pgx.Tx, tenantID string) (int64, error) {
	query := `
		INSERT INTO journal_entry_sequences (tenant_id, next_value)
		VALUES ($1, 2)
		ON CONFLICT (tenant_id)
		DO UPDATE SET next_value = journal_entry_sequences.next_value + 1
		RETURNING next_value - 1;
	`
	var number int64
	if err := tx.QueryRow(ctx, query, tenantID).Scan(&number); err != nil {
		return 0, fmt.Errorf("failed to allocate entry number for tenant %s: %w", tenantID, err)
	}
	return number, nil
}

// lockOpenPeriod takes a shared-intent lock on the OPEN period containing
// date and re-checks its status under the lock. A concurrent ClosePeriod
// blocks on the same row, so the period cannot close mid-posting.
func lockOpenPeriod(ctx context.Context, tx pgx.Tx, tenantID string, date time.Time) error {
	query := `
		SELECT status
		FROM fiscal_periods
		WHERE tenant_id = $1 AND status <> 'DRAFT' AND start_date <= $2 AND end_date >= $2
		LIMIT 1
		FOR UPDATE;
	`
	var status string
	err := tx.QueryRow(ctx, query, tenantID, date).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: no fiscal period contains date %s", apperrors.ErrPeriodNotPostable, date.Format("2006-01-02"))
	}
	if err != nil {
		return fmt.Errorf("failed to lock fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}
	if status != string(domain.PeriodOpen) {
		return fmt.Errorf("%w: fiscal period for date %s is %s", apperrors.ErrPeriodNotPostable, date.Format("2006-01-02"), status)
	}
	return nil
}

// PostEntry atomically posts a DRAFT entry: entry row locked and re-validated,
// open period confirmed under lock, account rows locked in stable order,
// balance law re-checked from the stored lines, balances applied, entry
// number assigned, status flipped. Everything or nothing.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, tenantID, entryID, postedBy string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`
	m, err := scanJournalEntry(tx.QueryRow(ctx, lockQuery, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	if m.Status != string(domain.EntryDraft) {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entryID, m.Status)
	}

	if err := lockOpenPeriod(ctx, tx, tenantID, m.EntryDate); err != nil {
		return nil, err
	}

	lines, err := r.findLinesByEntryIDTx(ctx, tx, entryID, m.CurrencyCode)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit, err := accounting.ValidateEntryBalance(lines, m.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	locked, err := lockAccountRows(ctx, tx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}

	accountTypes := make(map[string]domain.AccountType, len(locked))
	for id, a := range locked {
		if a.status != string(domain.AccountActive) {
			return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrValidation, id, a.status)
		}
		if a.currency != m.CurrencyCode {
			return nil, fmt.Errorf("%w: account %s currency %s does not match entry currency %s", apperrors.ErrValidation, id, a.currency, m.CurrencyCode)
		}
		accountTypes[id] = a.accountType
	}

	changes, err := accounting.NetBalanceChanges(lines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := applyBalanceChanges(ctx, tx, tenantID, changes, postedBy, now); err != nil {
		return nil, err
	}

	entryNumber, err := nextEntryNumber(ctx, tx, tenantID)
	if err != nil {
		return nil, err
	}

	postQuery := `
		UPDATE journal_entries
		SET status = 'POSTED', entry_number = $3, total_debit = $4, total_credit = $5, posted_at = $6, posted_by = $7, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	if _, err := tx.Exec(ctx, postQuery, tenantID, entryID, entryNumber, totalDebit.Amount(), totalCredit.Amount(), now, postedBy); err != nil {
		return nil, fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = string(domain.EntryPosted)
	m.EntryNumber = &entryNumber
	m.TotalDebit = totalDebit.Amount()
	m.TotalCredit = totalCredit.Amount()
	m.PostedAt = &now
	m.PostedBy = &postedBy
	m.LastUpdatedAt = now
	m.LastUpdatedBy = postedBy

	entry, err := mapping.ToDomainJournalEntry(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map posted entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return &entry, nil
}

// ReverseEntry atomically creates and posts the mirror of a POSTED entry:
// same accounts and amounts with sides swapped, dated now, linked to the
// original in both directions.
func (r *PgxJournalRepository) ReverseEntry(ctx context.Context, tenantID, originalEntryID, reason, userID string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`
	orig, err := scanJournalEntry(tx.QueryRow(ctx, lockQuery, tenantID, originalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock journal entry %s: %w", originalEntryID, err)
	}
	if orig.Status != string(domain.EntryPosted) {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, originalEntryID, orig.Status)
	}
	if orig.ReversedByEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s already reversed by %s", apperrors.ErrConflict, originalEntryID, *orig.ReversedByEntryID)
	}

	reversalDate := now.UTC().Truncate(24 * time.Hour)
	if err := lockOpenPeriod(ctx, tx, tenantID, reversalDate); err != nil {
		return nil, err
	}

	origLines, err := r.findLinesByEntryIDTx(ctx, tx, originalEntryID, orig.CurrencyCode)
	if err != nil {
		return nil, err
	}

	reversalID := uuid.NewString()
	reversalLines := make([]domain.JournalEntryLine, len(origLines))
	for i, line := range origLines {
		reversalLines[i] = domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    line.AccountID,
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			Description:  line.Description,
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountIDs := make([]string, 0, len(reversalLines))
	seen := make(map[string]struct{}, len(reversalLines))
	for _, line := range reversalLines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	locked, err := lockAccountRows(ctx, tx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	accountTypes := make(map[string]domain.AccountType, len(locked))
	for id, a := range locked {
		accountTypes[id] = a.accountType
	}

	changes, err := accounting.NetBalanceChanges(reversalLines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := applyBalanceChanges(ctx, tx, tenantID, changes, userID, now); err != nil {
		return nil, err
	}

	entryNumber, err := nextEntryNumber(ctx, tx, tenantID)
	if err != nil {
		return nil, err
	}

	origNumber := int64(0)
	if orig.EntryNumber != nil {
		origNumber = *orig.EntryNumber
	}
	description := fmt.Sprintf("Reversal of entry #%d: %s", origNumber, reason)

	reversal := models.JournalEntry{
		EntryID:           reversalID,
		TenantID:          tenantID,
		EntryNumber:       &entryNumber,
		EntryDate:         reversalDate,
		Reference:         orig.Reference,
		Description:       description,
		CurrencyCode:      orig.CurrencyCode,
		Status:            string(domain.EntryPosted),
		TotalDebit:        orig.TotalCredit,
		TotalCredit:       orig.TotalDebit,
		PostedAt:          &now,
		PostedBy:          &userID,
		ReversalOfEntryID: &originalEntryID,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := insertEntryTx(ctx, tx, reversal); err != nil {
		return nil, err
	}
	if err := insertLinesTx(ctx, tx, reversalLines); err != nil {
		return nil, err
	}

	stampQuery := `
		UPDATE journal_entries
		SET reversed_by_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	if _, err := tx.Exec(ctx, stampQuery, tenantID, originalEntryID, reversalID, now, userID); err != nil {
		return nil, fmt.Errorf("failed to stamp reversal link on entry %s: %w", originalEntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry, err := mapping.ToDomainJournalEntry(reversal)
	if err != nil {
		return nil, fmt.Errorf("failed to map reversal entry %s: %w", reversalID, err)
	}
	entry.Lines = reversalLines
	return &entry, nil
}

func (r *PgxJournalRepository) findLinesByEntryIDTx(ctx context.Context, tx pgx.Tx, entryID, currencyCode string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`

	rows, err := tx.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalEntryLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	lines, err := mapping.ToDomainJournalEntryLineSlice(modelLines, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to map lines for entry %s: %w", entryID, err)
	}
	return lines, nil
}
