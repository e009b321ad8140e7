package accounting_test

import (
	"testing"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func debitLine(t *testing.T, accountID, amount string) domain.JournalEntryLine {
	t.Helper()
	return domain.JournalEntryLine{
		AccountID:    accountID,
		DebitAmount:  money(t, amount),
		CreditAmount: domain.ZeroMoney("USD"),
	}
}

func creditLine(t *testing.T, accountID, amount string) domain.JournalEntryLine {
	t.Helper()
	return domain.JournalEntryLine{
		AccountID:    accountID,
		DebitAmount:  domain.ZeroMoney("USD"),
		CreditAmount: money(t, amount),
	}
}

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalEntryLine
		accountType domain.AccountType
		want        string
	}{
		{"debit to asset increases", debitLine(t, "a", "100"), domain.Asset, "100"},
		{"credit to asset decreases", creditLine(t, "a", "100"), domain.Asset, "-100"},
		{"debit to expense increases", debitLine(t, "a", "40.5"), domain.Expense, "40.5"},
		{"credit to revenue increases", creditLine(t, "a", "100"), domain.Revenue, "100"},
		{"debit to revenue decreases", debitLine(t, "a", "100"), domain.Revenue, "-100"},
		{"credit to liability increases", creditLine(t, "a", "7"), domain.Liability, "7"},
		{"debit to equity decreases", debitLine(t, "a", "7"), domain.Equity, "-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedDelta(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := accounting.SignedDelta(debitLine(t, "a", "1"), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidateEntryBalance(t *testing.T) {
	t.Run("balanced entry passes and returns totals", func(t *testing.T) {
		lines := []domain.JournalEntryLine{
			debitLine(t, "cash", "100.0000"),
			creditLine(t, "revenue", "100.0000"),
		}
		totalDebit, totalCredit, err := accounting.ValidateEntryBalance(lines, "USD")
		require.NoError(t, err)
		assert.Equal(t, "100.0000", totalDebit.String())
		assert.Equal(t, "100.0000", totalCredit.String())
	})

	t.Run("split lines still balance", func(t *testing.T) {
		lines := []domain.JournalEntryLine{
			debitLine(t, "cash", "60"),
			debitLine(t, "fees", "40"),
			creditLine(t, "revenue", "100"),
		}
		_, _, err := accounting.ValidateEntryBalance(lines, "USD")
		assert.NoError(t, err)
	})

	t.Run("unbalanced entry fails", func(t *testing.T) {
		lines := []domain.JournalEntryLine{
			debitLine(t, "cash", "100.0000"),
			creditLine(t, "revenue", "99.9999"),
		}
		_, _, err := accounting.ValidateEntryBalance(lines, "USD")
		assert.Error(t, err)
	})

	t.Run("fewer than two lines fails", func(t *testing.T) {
		_, _, err := accounting.ValidateEntryBalance([]domain.JournalEntryLine{debitLine(t, "cash", "1")}, "USD")
		assert.Error(t, err)
	})

	t.Run("both sides set on a line fails", func(t *testing.T) {
		bad := domain.JournalEntryLine{
			AccountID:    "cash",
			DebitAmount:  money(t, "10"),
			CreditAmount: money(t, "10"),
		}
		_, _, err := accounting.ValidateEntryBalance([]domain.JournalEntryLine{bad, creditLine(t, "rev", "10")}, "USD")
		assert.Error(t, err)
	})

	t.Run("neither side set on a line fails", func(t *testing.T) {
		bad := domain.JournalEntryLine{
			AccountID:    "cash",
			DebitAmount:  domain.ZeroMoney("USD"),
			CreditAmount: domain.ZeroMoney("USD"),
		}
		_, _, err := accounting.ValidateEntryBalance([]domain.JournalEntryLine{bad, creditLine(t, "rev", "10")}, "USD")
		assert.Error(t, err)
	})

	t.Run("line currency mismatch fails", func(t *testing.T) {
		eur, err := domain.NewMoney("100", "EUR")
		require.NoError(t, err)
		bad := domain.JournalEntryLine{
			AccountID:    "cash",
			DebitAmount:  eur,
			CreditAmount: domain.ZeroMoney("EUR"),
		}
		_, _, err = accounting.ValidateEntryBalance([]domain.JournalEntryLine{bad, creditLine(t, "rev", "100")}, "USD")
		assert.Error(t, err)
	})
}

func TestNetBalanceChanges(t *testing.T) {
	lines := []domain.JournalEntryLine{
		debitLine(t, "cash", "100"),
		creditLine(t, "cash", "30"),
		creditLine(t, "revenue", "70"),
	}
	types := map[string]domain.AccountType{
		"cash":    domain.Asset,
		"revenue": domain.Revenue,
	}

	changes, err := accounting.NetBalanceChanges(lines, types)
	require.NoError(t, err)
	assert.Equal(t, "70", changes["cash"].String())
	assert.Equal(t, "70", changes["revenue"].String())

	_, err = accounting.NetBalanceChanges(lines, map[string]domain.AccountType{"cash": domain.Asset})
	assert.Error(t, err, "missing account type must fail")
}
