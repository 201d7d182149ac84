package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

// LabelReaderSvc defines read operations for label data
type LabelReaderSvc interface {
	GetLabelByID(ctx context.Context, labelID string) (*domain.Label, error)
	ListLabels(ctx context.Context) ([]domain.Label, error)
}

// LabelWriterSvc defines write operations for label data
type LabelWriterSvc interface {
	CreateLabel(ctx context.Context, req dto.CreateLabelRequest, userID string) (*domain.Label, error)
	DeleteLabels(ctx context.Context, labelIDs []string) (int64, error)
}

// LabelSvcFacade combines all label-related service interfaces
type LabelSvcFacade interface {
	LabelReaderSvc
	LabelWriterSvc
}
