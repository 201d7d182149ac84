package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

const defaultCurrencyPrecision = 2

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency creates or replaces a currency.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	precision := defaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields:  domain.NewAuditFields(creatorUserID, time.Now()),
	}
	if err := domain.Validate(currency); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency saved", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", currencyCode))
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
