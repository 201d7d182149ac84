package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts, optionally restricted by label or country.
	ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccounts removes accounts and reports how many existed.
	DeleteAccounts(ctx context.Context, accountIDs []string) (int64, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
