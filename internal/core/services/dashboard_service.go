package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
)

// RecordSource is the part of the record service the dashboard reads from.
type RecordSource interface {
	portssvc.RecordReaderSvc
	portssvc.RecordConverterSvc
}

type dashboardService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	labelRepo       portsrepo.LabelReader
	records         RecordSource
	defaultCurrency string
}

// NewDashboardService creates the dashboard service. Every call loads a fresh snapshot
// of accounts, labels and records; nothing is cached between requests.
func NewDashboardService(accountRepo portsrepo.AccountReader, labelRepo portsrepo.LabelReader, records RecordSource, defaultCurrency string) portssvc.DashboardSvc {
	return &dashboardService{
		accountRepo:     accountRepo,
		labelRepo:       labelRepo,
		records:         records,
		defaultCurrency: strings.ToUpper(defaultCurrency),
	}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// compile loads the snapshot, converts every record to the query currency, joins and
// filters. The returned rows are all expressed in the returned currency.
func (s *dashboardService) compile(ctx context.Context, q portssvc.DashboardQuery) (string, []analytics.CompiledRow, error) {
	currency := strings.ToUpper(q.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for dashboard")
		return "", nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	labels, err := s.labelRepo.ListLabels(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load labels for dashboard")
		return "", nil, fmt.Errorf("failed to list labels: %w", err)
	}
	records, err := s.records.ListAllRecords(ctx)
	if err != nil {
		return "", nil, err
	}
	records, err = s.records.ConvertCurrency(ctx, records, currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert records", slog.String("currency", currency))
		return "", nil, err
	}

	rows, err := analytics.Compile(records, accounts, labels)
	if err != nil {
		s.LogError(ctx, err, "Failed to compile records")
		return "", nil, err
	}
	rows = analytics.Filter(rows, q.Filter)

	s.LogDebug(ctx, "Dashboard rows compiled",
		slog.String("currency", currency),
		slog.Int("records", len(records)),
		slog.Int("rows", len(rows)))
	return currency, rows, nil
}

func (s *dashboardService) Table(ctx context.Context, q portssvc.DashboardQuery) (*portssvc.DashboardView, error) {
	currency, rows, err := s.compile(ctx, q)
	if err != nil {
		return nil, err
	}
	field := analytics.BalanceFieldFor(currency)
	if q.WithTotal {
		if rows, err = analytics.SynthesizeTotal(rows, field); err != nil {
			return nil, err
		}
	}
	return &portssvc.DashboardView{Currency: currency, Field: field, Rows: rows}, nil
}

func (s *dashboardService) LineChart(ctx context.Context, q portssvc.DashboardQuery) (string, []analytics.Series, error) {
	currency, rows, err := s.compile(ctx, q)
	if err != nil {
		return "", nil, err
	}
	augmented, err := analytics.SynthesizeTotal(rows, analytics.BalanceFieldFor(currency))
	if err != nil {
		return "", nil, err
	}
	return currency, analytics.SeriesByAccount(augmented), nil
}

func (s *dashboardService) Treemap(ctx context.Context, q portssvc.DashboardQuery) (string, []analytics.CompiledRow, error) {
	currency, rows, err := s.compile(ctx, q)
	if err != nil {
		return "", nil, err
	}
	return currency, analytics.LatestPerAccount(rows), nil
}

func (s *dashboardService) Aligned(ctx context.Context, q portssvc.DashboardQuery) (string, *analytics.AlignedTable, error) {
	currency, rows, err := s.compile(ctx, q)
	if err != nil {
		return "", nil, err
	}
	table := analytics.Align(rows)
	return currency, &table, nil
}
