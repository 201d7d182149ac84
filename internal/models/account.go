package models

import "database/sql"

// Account is the row shape of the accounts table.
// LabelID, CountryCode and Description are nullable columns.
type Account struct {
	AccountID   string         `db:"account_id"`
	Name        string         `db:"name"`
	LabelID     sql.NullString `db:"label_id"`
	CountryCode sql.NullString `db:"country_code"`
	Description sql.NullString `db:"description"`
	AuditFields
}
