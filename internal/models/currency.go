package models

// Currency is a row of the currencies table; currency_code is the primary key.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	Precision    int    `db:"precision"`
	AuditFields
}
