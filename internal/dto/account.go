package dto

import (
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountCode     string               `json:"accountCode" binding:"required,max=20"`
	Name            string               `json:"name" binding:"required,max=100"`
	AccountType     domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category        string               `json:"category" binding:"required,max=50"`
	ParentAccountID *string              `json:"parentAccountID"` // Optional, use pointer for nullability
	NormalBalance   domain.NormalBalance `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
	IsSystem        bool                 `json:"isSystem"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided. Account
// code and normal balance are immutable after creation.
type UpdateAccountRequest struct {
	Name            *string             `json:"name"`
	AccountType     *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category        *string             `json:"category"`
	ParentAccountID *string             `json:"parentAccountID"` // Empty string clears the parent
	IsActive        *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	AccountCode     string               `json:"accountCode"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	Category        string               `json:"category"`
	ParentAccountID string               `json:"parentAccountID"` // Empty string if root
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	IsActive        bool                 `json:"isActive"`
	IsSystem        bool                 `json:"isSystem"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType *domain.AccountType `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Active      *bool               `form:"active"`
	Limit       int                 `form:"limit,default=50"`
	Offset      int                 `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		AccountCode:     acc.AccountCode,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Category:        acc.Category,
		ParentAccountID: acc.ParentAccountID,
		NormalBalance:   acc.NormalBalance,
		IsActive:        acc.IsActive,
		IsSystem:        acc.IsSystem,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
