package domain_test

import (
	"testing"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestJournalEntryLine_Side(t *testing.T) {
	debitLine := domain.JournalEntryLine{
		DebitAmount:  mustMoney(t, "100.0000", "USD"),
		CreditAmount: domain.ZeroMoney("USD"),
	}
	creditLine := domain.JournalEntryLine{
		DebitAmount:  domain.ZeroMoney("USD"),
		CreditAmount: mustMoney(t, "100.0000", "USD"),
	}

	assert.True(t, debitLine.IsDebit())
	assert.Equal(t, domain.DebitNormal, debitLine.Side())
	assert.Equal(t, "100.0000", debitLine.Amount().String())

	assert.False(t, creditLine.IsDebit())
	assert.Equal(t, domain.CreditNormal, creditLine.Side())
	assert.Equal(t, "100.0000", creditLine.Amount().String())
}

func TestJournalEntry_StatusHelpers(t *testing.T) {
	e := domain.JournalEntry{Status: domain.EntryDraft}
	assert.True(t, e.IsDraft())
	assert.False(t, e.IsPosted())

	e.Status = domain.EntryPosted
	assert.False(t, e.IsDraft())
	assert.True(t, e.IsPosted())

	e.Status = domain.EntryCancelled
	assert.False(t, e.IsDraft())
	assert.False(t, e.IsPosted())
}
