package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account type naturally increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalance maps an account type to its normal balance side.
// The mapping is closed: an unknown type yields an empty NormalBalance,
// which every caller treats as a data-integrity failure.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	case Liability, Equity, Revenue:
		return CreditNormal
	default:
		return ""
	}
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	return t.NormalBalance() != ""
}

// IsTemporary reports whether t is a temporary (nominal) account type.
// Temporary accounts must open at zero: the balance sheet folds their
// lifetime net into retained earnings, and an opening balance would be
// invisible to that fold.
func (t AccountType) IsTemporary() bool {
	return t == Revenue || t == Expense
}

// AccountStatus is the lifecycle flag of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account represents a chart-of-accounts node.
// Accounts form a tree via ParentAccountID; a parent's balance is never
// auto-aggregated from its children (aggregation is a reporting concern).
// CurrentBalance is mutated only by the posting engine.
type Account struct {
	AccountID       string        `json:"accountID"`
	TenantID        string        `json:"tenantID"`
	ParentAccountID string        `json:"parentAccountID"` // empty when root
	Code            string        `json:"code"`            // unique per tenant
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	AccountType     AccountType   `json:"accountType"`
	Status          AccountStatus `json:"status"`
	IsSystemAccount bool          `json:"isSystemAccount"`
	CurrencyCode    string        `json:"currencyCode"`
	OpeningBalance  Money         `json:"openingBalance"`
	CurrentBalance  Money         `json:"currentBalance"`
	AuditFields
}

// IsActive reports whether the account currently accepts postings.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
