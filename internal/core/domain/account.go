package domain

// Account represents a financial account a user tracks balances for.
type Account struct {
	AccountID   string `json:"accountID" validate:"required"`                    // Primary Key (UUID)
	Name        string `json:"name" validate:"required"`                         // User-defined name
	LabelID     string `json:"labelID"`                                          // Nullable FK -> labels.label_id
	CountryCode string `json:"countryCode" validate:"omitempty,len=2,uppercase"` // ISO 3166-1 alpha-2
	Description string `json:"description"`                                      // Nullable user description
	AuditFields
}

// HasLabel reports whether the account references a label.
func (a Account) HasLabel() bool {
	return a.LabelID != ""
}
