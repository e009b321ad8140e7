package repositories

import (
	"context"
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries behind the
// statement engine. Implementations only ever see POSTED entries.
type ReportingRepository interface {
	// GetTrialBalanceData sums posted line amounts per account up to asOf,
	// with each account's opening balance folded into its normal side.
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData nets REVENUE and EXPENSE account activity over
	// [from, to], each side signed by its type's normal balance.
	GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData nets ASSET, LIABILITY and EQUITY accounts as of asOf,
	// opening balances included.
	GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)
}
