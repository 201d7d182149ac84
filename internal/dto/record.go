package dto

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateRecordRequest defines the data needed to record an account balance on a day.
type CreateRecordRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// RecordResponse defines the data returned for a record.
type RecordResponse struct {
	RecordID      string          `json:"recordID"`
	AccountID     string          `json:"accountID"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:      r.RecordID,
		AccountID:     r.AccountID,
		Balance:       r.Balance,
		CurrencyCode:  r.CurrencyCode,
		Date:          r.Date.Format(DateLayout),
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		LastUpdatedAt: r.LastUpdatedAt,
		LastUpdatedBy: r.LastUpdatedBy,
	}
}

func ToListRecordResponse(records []domain.Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i := range records {
		res[i] = ToRecordResponse(&records[i])
	}
	return res
}

// ListRecordsParams defines query parameters for listing records.
type ListRecordsParams struct {
	AccountIDs []string `form:"accountID"`
	From       string   `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string   `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit      int      `form:"limit,default=100" binding:"min=1,max=1000"`
	NextToken  string   `form:"nextToken"`
}

// ListRecordsResponse wraps one page of records.
type ListRecordsResponse struct {
	Records   []RecordResponse `json:"records"`
	NextToken *string          `json:"nextToken,omitempty"`
}
