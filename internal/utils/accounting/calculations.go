package accounting

import (
	"fmt"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta computes the balance change a single line applies to its account.
// The sign is positive when the line's side matches the account's normal balance:
// DEBIT line on ASSET/EXPENSE -> +, CREDIT line on ASSET/EXPENSE -> -,
// DEBIT line on LIABILITY/EQUITY/REVENUE -> -, CREDIT line on those -> +.
// Used by both the posting engine and the repository layer so the convention
// can never drift between them.
func SignedDelta(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	normal := accountType.NormalBalance()
	if normal == "" {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}

	amount := line.Amount().Amount()
	if line.Side() == normal {
		return amount, nil
	}
	return amount.Neg(), nil
}

// ValidateEntryBalance enforces the balance law on a set of entry lines:
// at least two lines, exactly one of debit/credit strictly positive per line,
// every amount in the entry currency, and sum of debits equal to sum of credits.
// It returns the two totals so callers can stamp them on the entry.
func ValidateEntryBalance(lines []domain.JournalEntryLine, currencyCode string) (totalDebit domain.Money, totalCredit domain.Money, err error) {
	totalDebit = domain.ZeroMoney(currencyCode)
	totalCredit = domain.ZeroMoney(currencyCode)

	if len(lines) < 2 {
		return totalDebit, totalCredit, fmt.Errorf("journal entry must have at least two lines, got %d", len(lines))
	}

	for i, line := range lines {
		debitPositive := line.DebitAmount.IsPositive()
		creditPositive := line.CreditAmount.IsPositive()
		if debitPositive == creditPositive {
			return totalDebit, totalCredit, fmt.Errorf("line %d must have exactly one of debit/credit strictly positive", i)
		}
		if !line.DebitAmount.IsPositive() && !line.DebitAmount.IsZero() {
			return totalDebit, totalCredit, fmt.Errorf("line %d has a negative debit amount", i)
		}
		if !line.CreditAmount.IsPositive() && !line.CreditAmount.IsZero() {
			return totalDebit, totalCredit, fmt.Errorf("line %d has a negative credit amount", i)
		}
		if line.DebitAmount.CurrencyCode() != currencyCode || line.CreditAmount.CurrencyCode() != currencyCode {
			return totalDebit, totalCredit, fmt.Errorf("line %d currency does not match entry currency %s", i, currencyCode)
		}

		totalDebit, err = totalDebit.Add(line.DebitAmount)
		if err != nil {
			return totalDebit, totalCredit, err
		}
		totalCredit, err = totalCredit.Add(line.CreditAmount)
		if err != nil {
			return totalDebit, totalCredit, err
		}
	}

	if !totalDebit.Equals(totalCredit) {
		return totalDebit, totalCredit, fmt.Errorf("entry does not balance: debits %s, credits %s", totalDebit, totalCredit)
	}
	return totalDebit, totalCredit, nil
}

// NetBalanceChanges aggregates per-account signed deltas for a set of lines.
func NetBalanceChanges(lines []domain.JournalEntryLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account %s", line.AccountID)
		}
		delta, err := SignedDelta(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(delta)
	}
	return changes, nil
}
