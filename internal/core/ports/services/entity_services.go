package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// Deleter removes entities of one kind by id.
type Deleter interface {
	Delete(ctx context.Context, ids []string) (int64, error)
}

// DeleterFunc adapts a function to Deleter.
type DeleterFunc func(ctx context.Context, ids []string) (int64, error)

func (f DeleterFunc) Delete(ctx context.Context, ids []string) (int64, error) {
	return f(ctx, ids)
}

// EntityRegistry dispatches bulk deletion by entity kind.
type EntityRegistry interface {
	DeleteEntities(ctx context.Context, kind domain.EntityKind, ids []string) (int64, error)
}
