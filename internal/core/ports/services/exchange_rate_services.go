package services

import (
	"context"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

// ExchangeRateReaderSvc resolves the rate that converts one unit of fromCode into toCode.
type ExchangeRateReaderSvc interface {
	// GetExchangeRate is GetExchangeRateAsOf for the current date.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// GetExchangeRateAsOf uses the stored from→to rate or the inverse of the stored
	// to→from rate, whichever is effective nearer to asOf. Equal codes yield 1.
	GetExchangeRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)
}

type ExchangeRateWriterSvc interface {
	// CreateExchangeRate stores a positive rate between two distinct, known currencies.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
