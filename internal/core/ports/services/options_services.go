package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/dto"
)

// OptionsSvc builds the dashboard dropdown option lists.
type OptionsSvc interface {
	// GetOptions reads the current accounts, labels and currencies and returns their
	// option lists. defaultCurrency overrides the configured default when not empty.
	GetOptions(ctx context.Context, defaultCurrency string) (*dto.OptionsResponse, error)
}
