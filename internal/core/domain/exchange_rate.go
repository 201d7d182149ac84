package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies effective from a given date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// Convert applies the rate to amount.
func (r ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}

// Inverse returns the rate for the opposite direction. A zero rate is returned unchanged.
func (r ExchangeRate) Inverse() ExchangeRate {
	inv := r
	inv.FromCurrencyCode, inv.ToCurrencyCode = r.ToCurrencyCode, r.FromCurrencyCode
	if !r.Rate.IsZero() {
		inv.Rate = decimal.NewFromInt(1).Div(r.Rate)
	}
	return inv
}
