package dto

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate"`                                                  // Must be positive, checked by the service
	DateEffective    string          `json:"dateEffective" binding:"omitempty,datetime=2006-01-02"` // Defaults to today
}

// GetExchangeRateParams defines query parameters for looking up a rate.
type GetExchangeRateParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    string          `json:"dateEffective"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective.Format(DateLayout),
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
	}
}
