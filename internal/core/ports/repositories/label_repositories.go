package repositories

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// LabelReader defines read operations for label data
type LabelReader interface {
	// FindLabelByID retrieves a specific label by its unique identifier.
	FindLabelByID(ctx context.Context, labelID string) (*domain.Label, error)

	// ListLabels retrieves all labels ordered by name.
	ListLabels(ctx context.Context) ([]domain.Label, error)
}

// LabelWriter defines write operations for label data
type LabelWriter interface {
	// SaveLabel persists a new label.
	SaveLabel(ctx context.Context, label domain.Label) error

	// DeleteLabels removes the labels with the given IDs and returns how many existed.
	DeleteLabels(ctx context.Context, labelIDs []string) (int64, error)
}

// LabelRepositoryFacade combines all label-related repository interfaces
type LabelRepositoryFacade interface {
	LabelReader
	LabelWriter
}
