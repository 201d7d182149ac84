package domain

// Label is a user-defined category tag for accounts (e.g. "Savings", "Pension").
type Label struct {
	LabelID     string `json:"labelID" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	AuditFields
}
