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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	now             func() time.Time
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyReaderSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		now:             time.Now,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	dateEffective := domain.NormalizeDate(s.now())
	if req.DateEffective != "" {
		d, err := time.Parse(dto.DateLayout, req.DateEffective)
		if err != nil {
			return nil, fmt.Errorf("%w: dateEffective must be a YYYY-MM-DD date", apperrors.ErrValidation)
		}
		dateEffective = d
	}

	for _, code := range []string{from, to} {
		if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	now := s.now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    dateEffective,
		AuditFields:      domain.NewAuditFields(creatorUserID, now),
	}

	stored, err := s.rateRepo.SaveExchangeRate(ctx, rate)
	if err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate saved", slog.String("exchange_rate_id", stored.ExchangeRateID), slog.String("from", from), slog.String("to", to), slog.String("rate", stored.Rate.String()))
	return stored, nil
}

// GetExchangeRate retrieves the rate effective today.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	return s.GetExchangeRateAsOf(ctx, fromCode, toCode, s.now())
}

// GetExchangeRateAsOf looks up both the direct pair and the opposite pair and keeps
// the better candidate: a rate dated on or before asOf beats a later one; among two
// earlier rates the more recent wins, among two later rates the sooner wins, and the
// direct pair wins ties.
func (s *exchangeRateService) GetExchangeRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	asOf = domain.NormalizeDate(asOf)
	if fromCode == toCode {
		return &domain.ExchangeRate{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: decimal.NewFromInt(1), DateEffective: asOf}, nil
	}

	direct, err := s.findRate(ctx, fromCode, toCode, asOf)
	if err != nil {
		return nil, err
	}
	inverse, err := s.findRate(ctx, toCode, fromCode, asOf)
	if err != nil {
		return nil, err
	}
	if inverse != nil && inverse.Rate.IsZero() {
		inverse = nil
	}

	switch {
	case direct == nil && inverse == nil:
		return nil, fmt.Errorf("%w: no exchange rate between %s and %s", apperrors.ErrNotFound, fromCode, toCode)
	case inverse == nil || (direct != nil && !closerRate(*inverse, *direct, asOf)):
		return direct, nil
	default:
		inv := inverse.Inverse()
		return &inv, nil
	}
}

// findRate returns nil without error when the pair has no rate.
func (s *exchangeRateService) findRate(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateAsOf(ctx, from, to, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to get exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// closerRate reports whether a is strictly preferable to b for asOf.
func closerRate(a, b domain.ExchangeRate, asOf time.Time) bool {
	aBefore, bBefore := !a.DateEffective.After(asOf), !b.DateEffective.After(asOf)
	if aBefore != bBefore {
		return aBefore
	}
	if aBefore {
		return a.DateEffective.After(b.DateEffective)
	}
	return a.DateEffective.Before(b.DateEffective)
}
