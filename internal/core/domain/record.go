package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single balance observation for one account on one calendar day.
type Record struct {
	RecordID     string          `json:"recordID" validate:"required"`
	AccountID    string          `json:"accountID" validate:"required"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode" validate:"required,len=3,uppercase"`
	Date         time.Time       `json:"date"` // Day granularity, UTC midnight
	AuditFields
}

// NormalizeDate drops the time-of-day component, keeping the calendar date of t.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the number of whole days between the Unix epoch and the calendar date of t.
func DayNumber(t time.Time) int64 {
	return NormalizeDate(t).Unix() / int64(24*time.Hour/time.Second)
}
