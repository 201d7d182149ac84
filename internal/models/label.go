package models

import "database/sql"

// Label is the row shape of the labels table.
type Label struct {
	LabelID     string         `db:"label_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	AuditFields
}
