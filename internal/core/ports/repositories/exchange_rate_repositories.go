package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateAsOf retrieves the stored rate for exactly this currency pair that
	// is effective on asOf: the latest one dated on or before asOf, otherwise the
	// earliest one dated after it.
	FindExchangeRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists an exchange rate, replacing the rate of the same pair and date,
	// and returns the stored rate. A replaced rate keeps its stored id.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
