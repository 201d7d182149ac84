package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock Services ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccounts(ctx context.Context, accountIDs []string) (int64, error) {
	args := m.Called(ctx, accountIDs)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) GetLabelByID(ctx context.Context, labelID string) (*domain.Label, error) {
	args := m.Called(ctx, labelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Label), args.Error(1)
}

func (m *MockLabelService) ListLabels(ctx context.Context) ([]domain.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Label), args.Error(1)
}

func (m *MockLabelService) CreateLabel(ctx context.Context, req dto.CreateLabelRequest, userID string) (*domain.Label, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Label), args.Error(1)
}

func (m *MockLabelService) DeleteLabels(ctx context.Context, labelIDs []string) (int64, error) {
	args := m.Called(ctx, labelIDs)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.LabelSvcFacade = (*MockLabelService)(nil)

type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) (*portssvc.RecordPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.RecordPage), args.Error(1)
}

func (m *MockRecordService) ListAllRecords(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest, userID string) (*domain.Record, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordService) DeleteRecords(ctx context.Context, recordIDs []string) (int64, error) {
	args := m.Called(ctx, recordIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordService) ConvertCurrency(ctx context.Context, records []domain.Record, target string) ([]domain.Record, error) {
	args := m.Called(ctx, records, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

var _ portssvc.RecordSvcFacade = (*MockRecordService)(nil)

type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetExchangeRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

type MockOptionsService struct {
	mock.Mock
}

func (m *MockOptionsService) GetOptions(ctx context.Context, defaultCurrency string) (*dto.OptionsResponse, error) {
	args := m.Called(ctx, defaultCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OptionsResponse), args.Error(1)
}

var _ portssvc.OptionsSvc = (*MockOptionsService)(nil)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Table(ctx context.Context, q portssvc.DashboardQuery) (*portssvc.DashboardView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DashboardView), args.Error(1)
}

func (m *MockDashboardService) LineChart(ctx context.Context, q portssvc.DashboardQuery) (string, []analytics.Series, error) {
	args := m.Called(ctx, q)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]analytics.Series), args.Error(2)
}

func (m *MockDashboardService) Treemap(ctx context.Context, q portssvc.DashboardQuery) (string, []analytics.CompiledRow, error) {
	args := m.Called(ctx, q)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]analytics.CompiledRow), args.Error(2)
}

func (m *MockDashboardService) Aligned(ctx context.Context, q portssvc.DashboardQuery) (string, *analytics.AlignedTable, error) {
	args := m.Called(ctx, q)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*analytics.AlignedTable), args.Error(2)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

type MockEntityRegistry struct {
	mock.Mock
}

func (m *MockEntityRegistry) DeleteEntities(ctx context.Context, kind domain.EntityKind, ids []string) (int64, error) {
	args := m.Called(ctx, kind, ids)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.EntityRegistry = (*MockEntityRegistry)(nil)
