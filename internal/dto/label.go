package dto

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// CreateLabelRequest defines the data needed to create a new label.
type CreateLabelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// LabelResponse defines the data returned for a label.
type LabelResponse struct {
	LabelID       string    `json:"labelID"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

func ToLabelResponse(l *domain.Label) LabelResponse {
	return LabelResponse{
		LabelID:       l.LabelID,
		Name:          l.Name,
		Description:   l.Description,
		CreatedAt:     l.CreatedAt,
		CreatedBy:     l.CreatedBy,
		LastUpdatedAt: l.LastUpdatedAt,
		LastUpdatedBy: l.LastUpdatedBy,
	}
}

func ToListLabelResponse(labels []domain.Label) []LabelResponse {
	res := make([]LabelResponse, len(labels))
	for i := range labels {
		res[i] = ToLabelResponse(&labels[i])
	}
	return res
}

// ListLabelsResponse wraps the list of labels.
type ListLabelsResponse struct {
	Labels []LabelResponse `json:"labels"`
}
