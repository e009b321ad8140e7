package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData sums posted line amounts per account up to asOf. Each
// account's opening balance is folded into its normal side; a negative
// opening lands on the opposite side as a positive amount.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(pl.debit_amount), 0)
				+ CASE
					WHEN a.account_type IN ('ASSET', 'EXPENSE') AND a.opening_balance >= 0 THEN a.opening_balance
					WHEN a.account_type NOT IN ('ASSET', 'EXPENSE') AND a.opening_balance < 0 THEN -a.opening_balance
					ELSE 0
				END AS debit,
			COALESCE(SUM(pl.credit_amount), 0)
				+ CASE
					WHEN a.account_type NOT IN ('ASSET', 'EXPENSE') AND a.opening_balance >= 0 THEN a.opening_balance
					WHEN a.account_type IN ('ASSET', 'EXPENSE') AND a.opening_balance < 0 THEN -a.opening_balance
					ELSE 0
				END AS credit
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit_amount, l.credit_amount
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2
		) pl ON pl.account_id = a.account_id
		WHERE a.tenant_id = $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.opening_balance
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetProfitAndLossData nets REVENUE and EXPENSE account activity over
// [from, to]. Revenue nets are credit minus debit, expense nets debit minus
// credit, so both come out positive under normal activity.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(
				CASE WHEN a.account_type = 'REVENUE'
					THEN pl.credit_amount - pl.debit_amount
					ELSE pl.debit_amount - pl.credit_amount
				END), 0) AS net_amount
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit_amount, l.credit_amount
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date >= $2 AND e.entry_date <= $3
		) pl ON pl.account_id = a.account_id
		WHERE a.tenant_id = $1 AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query profit and loss for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		var accountType string
		if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.Name, &accountType, &a.NetAmount); err != nil {
			return nil, nil, fmt.Errorf("failed to scan profit and loss row: %w", err)
		}
		if accountType == string(domain.Revenue) {
			revenue = append(revenue, a)
		} else {
			expenses = append(expenses, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}
	return revenue, expenses, nil
}

// GetBalanceSheetData nets ASSET, LIABILITY and EQUITY accounts as of asOf,
// opening balances included. Asset nets are debit minus credit; liability and
// equity nets are credit minus debit.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.opening_balance + COALESCE(SUM(
				CASE WHEN a.account_type = 'ASSET'
					THEN pl.debit_amount - pl.credit_amount
					ELSE pl.credit_amount - pl.debit_amount
				END), 0) AS net_amount
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit_amount, l.credit_amount
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2
		) pl ON pl.account_id = a.account_id
		WHERE a.tenant_id = $1 AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.opening_balance
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query balance sheet for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	assets := []domain.AccountAmount{}
	liabilities := []domain.AccountAmount{}
	equity := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		var accountType string
		if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.Name, &accountType, &a.NetAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan balance sheet row: %w", err)
		}
		switch accountType {
		case string(domain.Asset):
			assets = append(assets, a)
		case string(domain.Liability):
			liabilities = append(liabilities, a)
		default:
			equity = append(equity, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}
	return assets, liabilities, equity, nil
}
