package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	labelRepo   portsrepo.LabelReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithLabelReader enables checking that an account's label exists.
func WithLabelReader(repo portsrepo.LabelReader) AccountServiceOption {
	return func(s *accountService) {
		s.labelRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if req.LabelID != "" && s.labelRepo != nil {
		if _, err := s.labelRepo.FindLabelByID(ctx, req.LabelID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: label %s not found", apperrors.ErrValidation, req.LabelID)
			}
			s.LogError(ctx, err, "Failed to validate account label", slog.String("label_id", req.LabelID))
			return nil, fmt.Errorf("failed to validate label %s: %w", req.LabelID, err)
		}
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		LabelID:     req.LabelID,
		CountryCode: req.CountryCode,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}
	if err := domain.Validate(account); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account in repository", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully in service", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		// NotFound is an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID in repository", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully from service", slog.Int("count", len(accounts)))
	return accounts, nil
}

// DeleteAccounts removes accounts. Their records are kept and compile as unmatched.
func (s *accountService) DeleteAccounts(ctx context.Context, accountIDs []string) (int64, error) {
	ids := uniqueIDs(accountIDs)
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("at least one account id is required")
	}
	deleted, err := s.accountRepo.DeleteAccounts(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete accounts", slog.Int("count", len(ids)))
		return 0, fmt.Errorf("failed to delete accounts: %w", err)
	}
	s.LogInfo(ctx, "Accounts deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}
