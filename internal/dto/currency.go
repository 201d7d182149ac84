package dto

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// CreateCurrencyRequest adds a currency or replaces the one with the same code.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3" example:"EUR"`
	Symbol       string `json:"symbol" binding:"max=8" example:"€"`
	Name         string `json:"name" binding:"required" example:"Euro"`
	Precision    *int   `json:"precision" binding:"omitempty,min=0,max=8" example:"2"` // minor-unit digits, 2 when omitted
}

type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol,omitempty"`
	Name          string    `json:"name"`
	Precision     int       `json:"precision"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Symbol:        c.Symbol,
		Name:          c.Name,
		Precision:     c.Precision,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCurrencyResponse keeps the repository order (by code).
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, 0, len(currencies))
	for i := range currencies {
		res = append(res, ToCurrencyResponse(&currencies[i]))
	}
	return res
}
