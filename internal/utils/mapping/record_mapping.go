package mapping

import (
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/models"
)

// ToModelRecord converts a domain Record to a model Record. The date is stored
// without its time-of-day component.
func ToModelRecord(d domain.Record) models.Record {
	return models.Record{
		RecordID:     d.RecordID,
		AccountID:    d.AccountID,
		Balance:      d.Balance,
		CurrencyCode: d.CurrencyCode,
		Date:         domain.NormalizeDate(d.Date),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecord converts a model Record to a domain Record
func ToDomainRecord(m models.Record) domain.Record {
	return domain.Record{
		RecordID:     m.RecordID,
		AccountID:    m.AccountID,
		Balance:      m.Balance,
		CurrencyCode: m.CurrencyCode,
		Date:         domain.NormalizeDate(m.Date),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecordSlice converts a slice of model Records to a slice of domain Records
func ToDomainRecordSlice(ms []models.Record) []domain.Record {
	ds := make([]domain.Record, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecord(m)
	}
	return ds
}
