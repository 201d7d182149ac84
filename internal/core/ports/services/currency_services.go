package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

// CurrencyReaderSvc looks currencies up. Codes are matched case-insensitively.
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

type CurrencyWriterSvc interface {
	// CreateCurrency stores the currency, replacing any currency with the same code.
	// Precision defaults to 2 minor-unit digits.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
