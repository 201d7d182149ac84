package domain

import "time"

// AuditFields records who created and last changed an entity, and when.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps a freshly created entity. Times are kept in UTC at microsecond
// precision, which is what both Postgres and Mongo store.
func NewAuditFields(userID string, now time.Time) AuditFields {
	now = now.UTC().Truncate(time.Microsecond)
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
