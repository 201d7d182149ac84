package mapping

import (
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/models"
)

// ToModelLabel converts a domain Label to a model Label
func ToModelLabel(d domain.Label) models.Label {
	return models.Label{
		LabelID:     d.LabelID,
		Name:        d.Name,
		Description: toNullString(d.Description),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLabel converts a model Label to a domain Label
func ToDomainLabel(m models.Label) domain.Label {
	return domain.Label{
		LabelID:     m.LabelID,
		Name:        m.Name,
		Description: m.Description.String,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLabelSlice converts a slice of model Labels to a slice of domain Labels
func ToDomainLabelSlice(ms []models.Label) []domain.Label {
	ds := make([]domain.Label, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLabel(m)
	}
	return ds
}
