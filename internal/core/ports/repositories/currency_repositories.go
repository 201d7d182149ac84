package repositories

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// CurrencyReader looks currencies up by their upper-case ISO code.
type CurrencyReader interface {
	// FindCurrencyByCode returns apperrors.ErrNotFound for an unknown code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

type CurrencyWriter interface {
	// SaveCurrency inserts the currency, or replaces the one with the same code.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
