package mapping

import (
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		LabelID:     toNullString(d.LabelID),
		CountryCode: toNullString(d.CountryCode),
		Description: toNullString(d.Description),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		LabelID:     m.LabelID.String,
		CountryCode: m.CountryCode.String,
		Description: m.Description.String,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
