package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is the row shape of the records table. Date is a DATE column.
type Record struct {
	RecordID     string          `db:"record_id"`
	AccountID    string          `db:"account_id"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	Date         time.Time       `db:"date"`
	AuditFields
}
