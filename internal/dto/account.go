package dto

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	LabelID     string `json:"labelID"`                                         // Optional
	CountryCode string `json:"countryCode" binding:"omitempty,len=2,uppercase"` // Optional, ISO 3166-1 alpha-2
	Description string `json:"description"`                                     // Optional
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Name          string    `json:"name"`
	LabelID       string    `json:"labelID,omitempty"`
	CountryCode   string    `json:"countryCode,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		LabelID:       acc.LabelID,
		CountryCode:   acc.CountryCode,
		Description:   acc.Description,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	LabelID     string `form:"labelID"`
	CountryCode string `form:"countryCode" binding:"omitempty,len=2"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
