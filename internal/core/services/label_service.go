package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/google/uuid"
)

type labelService struct {
	BaseService
	labelRepo portsrepo.LabelRepositoryFacade
}

// NewLabelService creates a new label service.
func NewLabelService(repo portsrepo.LabelRepositoryFacade) portssvc.LabelSvcFacade {
	return &labelService{labelRepo: repo}
}

var _ portssvc.LabelSvcFacade = (*labelService)(nil)

func (s *labelService) CreateLabel(ctx context.Context, req dto.CreateLabelRequest, userID string) (*domain.Label, error) {
	label := domain.Label{
		LabelID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}
	if err := domain.Validate(label); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.labelRepo.SaveLabel(ctx, label); err != nil {
		s.LogError(ctx, err, "Failed to save label in repository", slog.String("label_id", label.LabelID))
		return nil, err
	}

	s.LogInfo(ctx, "Label created", slog.String("label_id", label.LabelID))
	return &label, nil
}

func (s *labelService) GetLabelByID(ctx context.Context, labelID string) (*domain.Label, error) {
	label, err := s.labelRepo.FindLabelByID(ctx, labelID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find label by ID", slog.String("label_id", labelID))
		}
		return nil, err
	}
	return label, nil
}

func (s *labelService) ListLabels(ctx context.Context) ([]domain.Label, error) {
	labels, err := s.labelRepo.ListLabels(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list labels")
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	if labels == nil {
		return []domain.Label{}, nil
	}
	return labels, nil
}

// DeleteLabels removes labels. Accounts that referenced them become unlabelled.
func (s *labelService) DeleteLabels(ctx context.Context, labelIDs []string) (int64, error) {
	ids := uniqueIDs(labelIDs)
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("at least one label id is required")
	}
	deleted, err := s.labelRepo.DeleteLabels(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete labels", slog.Int("count", len(ids)))
		return 0, fmt.Errorf("failed to delete labels: %w", err)
	}
	s.LogInfo(ctx, "Labels deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}
