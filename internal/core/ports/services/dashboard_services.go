package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
)

// DashboardQuery selects the rows a dashboard view is built from.
type DashboardQuery struct {
	Currency  string // target currency; empty means the configured default
	Filter    analytics.RowFilter
	WithTotal bool // tabular view only; charts always carry the total
}

// DashboardView is the compiled, filtered and converted row set of one request.
type DashboardView struct {
	Currency string
	Field    analytics.BalanceField
	Rows     []analytics.CompiledRow
}

// DashboardSvc builds the analysis views from a fresh snapshot on every call.
type DashboardSvc interface {
	// Table returns the compiled rows, with the synthetic total appended when requested.
	Table(ctx context.Context, q DashboardQuery) (*DashboardView, error)

	// LineChart returns one series per account plus the total series.
	LineChart(ctx context.Context, q DashboardQuery) (string, []analytics.Series, error)

	// Treemap returns each account's latest row, ordered by label.
	Treemap(ctx context.Context, q DashboardQuery) (string, []analytics.CompiledRow, error)

	// Aligned returns the interpolated date x account matrix.
	Aligned(ctx context.Context, q DashboardQuery) (string, *analytics.AlignedTable, error)
}
