package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portsrepo "github.com/acmeerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
)

// reportingService is the statement engine: aggregation over posted entries
// only, no mutation. Draft and cancelled entries are invisible to every
// report, so a balanced ledger stays balanced regardless of drafts in flight.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance reports every account's summed debits and credits up to asOf,
// opening balances folded into each account's normal side. Equal totals are
// the ledger's primary integrity invariant: an unbalanced result is reported
// as-is with Balanced=false and raised as an error-level alarm, never
// auto-corrected.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tenantID, asOf.UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	balanced := totalDebit.Equal(totalCredit)
	if !balanced {
		s.LogError(ctx, fmt.Errorf("%w: trial balance off by %s", apperrors.ErrInternal, totalDebit.Sub(totalCredit)),
			"Ledger integrity alarm: trial balance does not balance",
			slog.String("tenant_id", tenantID),
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
	}

	return &domain.TrialBalanceReport{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balanced:    balanced,
	}, nil
}

// ProfitAndLoss reports revenue and expense activity over [from, to].
// Net income = total revenue - total expenses, each side already signed by
// its type's normal balance.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range end %s precedes start %s",
			apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenantID, from.UTC(), to.UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to compute profit and loss", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to compute profit and loss: %w", err)
	}

	totalRevenue := sumNetAmounts(revenue)
	totalExpenses := sumNetAmounts(expenses)

	return &domain.PAndLReport{
		Revenue:   revenue,
		Expenses:  expenses,
		NetIncome: totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet reports assets, liabilities and equity as of asOf. The
// open-to-date net income of revenue/expense accounts is folded into equity
// as retained earnings so the accounting equation holds.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	asOf = asOf.UTC()

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, tenantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance sheet", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to compute balance sheet: %w", err)
	}

	// All-time P&L up to asOf gives retained earnings. This relies on
	// revenue/expense accounts opening at zero, which account creation
	// enforces.
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenantID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute retained earnings", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to compute retained earnings: %w", err)
	}
	retained := sumNetAmounts(revenue).Sub(sumNetAmounts(expenses))

	totalAssets := sumNetAmounts(assets)
	totalLiabilities := sumNetAmounts(liabilities)
	totalEquity := sumNetAmounts(equity).Add(retained)

	balanced := totalAssets.Equal(totalLiabilities.Add(totalEquity))
	if !balanced {
		s.LogError(ctx, fmt.Errorf("%w: balance sheet off by %s", apperrors.ErrInternal,
			totalAssets.Sub(totalLiabilities.Add(totalEquity))),
			"Ledger integrity alarm: balance sheet does not balance",
			slog.String("tenant_id", tenantID),
			slog.String("total_assets", totalAssets.String()),
			slog.String("total_liabilities", totalLiabilities.String()),
			slog.String("total_equity", totalEquity.String()))
	}

	return &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		RetainedEarnings: retained,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		Balanced:         balanced,
	}, nil
}

func sumNetAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}
