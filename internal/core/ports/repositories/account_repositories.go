package repositories

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// AccountFilter narrows ListAccounts. Empty fields do not restrict.
type AccountFilter struct {
	LabelID     string
	CountryCode string
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts matching the filter, ordered by name.
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeleteAccounts removes the accounts with the given IDs and returns how many existed.
	DeleteAccounts(ctx context.Context, accountIDs []string) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
