package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account in a trial balance report.
// Opening balances are folded into the account's normal side.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance with asserted totals.
// Balanced is the primary correctness check of the whole ledger: an unbalanced
// report is a data-integrity alarm, never something to auto-correct.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report over a date range.
// Net amounts follow each type's normal balance: revenue nets are credit-positive,
// expense nets debit-positive.
type PAndLReport struct {
	Revenue   []AccountAmount `json:"revenue"`
	Expenses  []AccountAmount `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport represents a balance sheet as of a date.
// RetainedEarnings folds the open-to-date net income into equity so the
// accounting equation holds: TotalAssets == TotalLiabilities + TotalEquity.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"` // includes retained earnings
	Balanced         bool            `json:"balanced"`
}
