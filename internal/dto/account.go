package dto

import (
	"time"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode    string             `json:"currencyCode" binding:"required,len=3"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
	IsSystemAccount bool               `json:"isSystemAccount"`
	OpeningBalance  decimal.Decimal    `json:"openingBalance"` // Optional, defaults to zero
}

// UpdateAccountRequest defines the metadata fields allowed to change on an account.
// Balance is never updatable through this path; only the posting engine moves it.
type UpdateAccountRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.AccountStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	TenantID        string             `json:"tenantID"`
	ParentAccountID string             `json:"parentAccountID"` // empty string when root
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	AccountType     domain.AccountType `json:"accountType"`
	NormalBalance   string             `json:"normalBalance"`
	Status          string             `json:"status"`
	IsSystemAccount bool               `json:"isSystemAccount"`
	CurrencyCode    string             `json:"currencyCode"`
	OpeningBalance  string             `json:"openingBalance"`
	CurrentBalance  string             `json:"currentBalance"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		TenantID:        acc.TenantID,
		ParentAccountID: acc.ParentAccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		Description:     acc.Description,
		AccountType:     acc.AccountType,
		NormalBalance:   string(acc.AccountType.NormalBalance()),
		Status:          string(acc.Status),
		IsSystemAccount: acc.IsSystemAccount,
		CurrencyCode:    acc.CurrencyCode,
		OpeningBalance:  acc.OpeningBalance.String(),
		CurrentBalance:  acc.CurrentBalance.String(),
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType string `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Status      string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Limit       int    `form:"limit,default=50"`
	Offset      int    `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
