package mapping

import (
	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var parentID *string
	if d.ParentAccountID != "" {
		parentID = &d.ParentAccountID
	}
	return models.Account{
		AccountID:       d.AccountID,
		TenantID:        d.TenantID,
		ParentAccountID: parentID,
		Code:            d.Code,
		Name:            d.Name,
		Description:     d.Description,
		AccountType:     string(d.AccountType),
		Status:          string(d.Status),
		IsSystemAccount: d.IsSystemAccount,
		CurrencyCode:    d.CurrencyCode,
		OpeningBalance:  d.OpeningBalance.Amount(),
		CurrentBalance:  d.CurrentBalance.Amount(),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// Balances are reattached to the account's currency; model amounts are already
// at the ledger scale so the Money constructor cannot fail on them.
func ToDomainAccount(m models.Account) (domain.Account, error) {
	opening, err := domain.NewMoneyFromDecimal(m.OpeningBalance, m.CurrencyCode)
	if err != nil {
		return domain.Account{}, err
	}
	current, err := domain.NewMoneyFromDecimal(m.CurrentBalance, m.CurrencyCode)
	if err != nil {
		return domain.Account{}, err
	}
	parentID := ""
	if m.ParentAccountID != nil {
		parentID = *m.ParentAccountID
	}
	return domain.Account{
		AccountID:       m.AccountID,
		TenantID:        m.TenantID,
		ParentAccountID: parentID,
		Code:            m.Code,
		Name:            m.Name,
		Description:     m.Description,
		AccountType:     domain.AccountType(m.AccountType),
		Status:          domain.AccountStatus(m.Status),
		IsSystemAccount: m.IsSystemAccount,
		CurrencyCode:    m.CurrencyCode,
		OpeningBalance:  opening,
		CurrentBalance:  current,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}, nil
}
