package domain

import "github.com/shopspring/decimal"

// MaxCurrencyPrecision bounds the number of minor-unit digits a currency may declare.
const MaxCurrencyPrecision = 8

// Currency is an ISO 4217 currency that balances and rates may be expressed in.
type Currency struct {
	CurrencyCode string `json:"currencyCode" validate:"required,len=3,uppercase"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name" validate:"required"`
	Precision    int    `json:"precision" validate:"min=0,max=8"` // minor-unit digits: 2 for USD, 0 for JPY
	AuditFields
}

// Round rounds amount to the currency's minor unit.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(int32(c.Precision))
}
