package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
)

type entityRegistry struct {
	BaseService
	deleters map[domain.EntityKind]portssvc.Deleter
}

// NewEntityRegistry creates a registry dispatching deletes to the given deleters.
func NewEntityRegistry(deleters map[domain.EntityKind]portssvc.Deleter) portssvc.EntityRegistry {
	return &entityRegistry{deleters: deleters}
}

var _ portssvc.EntityRegistry = (*entityRegistry)(nil)

func (r *entityRegistry) DeleteEntities(ctx context.Context, kind domain.EntityKind, ids []string) (int64, error) {
	deleter, ok := r.deleters[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown entity kind %q", apperrors.ErrValidation, kind)
	}
	deleted, err := deleter.Delete(ctx, ids)
	if err != nil {
		return 0, err
	}
	r.LogInfo(ctx, "Entities deleted", slog.String("kind", string(kind)), slog.Int64("deleted", deleted))
	return deleted, nil
}
