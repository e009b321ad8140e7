package services

import (
	"context"
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
)

// ReportingSvcFacade is the statement engine: pure read/aggregation, no mutation.
type ReportingSvcFacade interface {
	// TrialBalance reports every account's summed debits/credits up to asOf.
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss reports revenue and expense activity over [from, to].
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet reports assets, liabilities and equity as of asOf, with
	// open-to-date net income folded into equity as retained earnings.
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
