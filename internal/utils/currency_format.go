package utils

import (
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoundToCurrency rounds an amount to the minor unit of a currency.
// Example: 12.3456 in USD (precision 2) becomes 12.35, in JPY (precision 0) 12.
func RoundToCurrency(amount decimal.Decimal, currency domain.Currency) decimal.Decimal {
	return currency.Round(amount)
}
