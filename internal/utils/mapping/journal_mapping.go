package mapping

import (
	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	var entryNumber *int64
	if d.EntryNumber > 0 {
		n := d.EntryNumber
		entryNumber = &n
	}
	var postedBy *string
	if d.PostedBy != "" {
		postedBy = &d.PostedBy
	}
	return models.JournalEntry{
		EntryID:           d.EntryID,
		TenantID:          d.TenantID,
		EntryNumber:       entryNumber,
		EntryDate:         d.EntryDate,
		Reference:         d.Reference,
		Description:       d.Description,
		CurrencyCode:      d.CurrencyCode,
		Status:            string(d.Status),
		TotalDebit:        d.TotalDebit.Amount(),
		TotalCredit:       d.TotalCredit.Amount(),
		PostedAt:          d.PostedAt,
		PostedBy:          postedBy,
		ReversalOfEntryID: d.ReversalOfEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) (domain.JournalEntry, error) {
	totalDebit, err := domain.NewMoneyFromDecimal(m.TotalDebit, m.CurrencyCode)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	totalCredit, err := domain.NewMoneyFromDecimal(m.TotalCredit, m.CurrencyCode)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	var entryNumber int64
	if m.EntryNumber != nil {
		entryNumber = *m.EntryNumber
	}
	postedBy := ""
	if m.PostedBy != nil {
		postedBy = *m.PostedBy
	}
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		TenantID:          m.TenantID,
		EntryNumber:       entryNumber,
		EntryDate:         m.EntryDate,
		Reference:         m.Reference,
		Description:       m.Description,
		CurrencyCode:      m.CurrencyCode,
		Status:            domain.EntryStatus(m.Status),
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		PostedAt:          m.PostedAt,
		PostedBy:          postedBy,
		ReversalOfEntryID: m.ReversalOfEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelJournalEntryLine converts a domain line to a model line
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		AccountCode:  d.AccountCode,
		AccountName:  d.AccountName,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount.Amount(),
		CreditAmount: d.CreditAmount.Amount(),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a model line to a domain line.
// The line currency is the owning entry's currency.
func ToDomainJournalEntryLine(m models.JournalEntryLine, currencyCode string) (domain.JournalEntryLine, error) {
	debit, err := domain.NewMoneyFromDecimal(m.DebitAmount, currencyCode)
	if err != nil {
		return domain.JournalEntryLine{}, err
	}
	credit, err := domain.NewMoneyFromDecimal(m.CreditAmount, currencyCode)
	if err != nil {
		return domain.JournalEntryLine{}, err
	}
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
		Description:  m.Description,
		DebitAmount:  debit,
		CreditAmount: credit,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainJournalEntryLineSlice converts model lines to domain lines.
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine, currencyCode string) ([]domain.JournalEntryLine, error) {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		d, err := ToDomainJournalEntryLine(m, currencyCode)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
