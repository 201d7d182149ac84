package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccounts(ctx context.Context, accountIDs []string) (int64, error) {
	args := m.Called(ctx, accountIDs)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock LabelRepository ---
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) SaveLabel(ctx context.Context, label domain.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) FindLabelByID(ctx context.Context, labelID string) (*domain.Label, error) {
	args := m.Called(ctx, labelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Label), args.Error(1)
}

func (m *MockLabelRepository) ListLabels(ctx context.Context) ([]domain.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Label), args.Error(1)
}

func (m *MockLabelRepository) DeleteLabels(ctx context.Context, labelIDs []string) (int64, error) {
	args := m.Called(ctx, labelIDs)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RecordRepository ---
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) ListRecords(ctx context.Context, query portsrepo.RecordQuery) ([]domain.Record, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordRepository) DeleteRecords(ctx context.Context, recordIDs []string) (int64, error) {
	args := m.Called(ctx, recordIDs)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateAsOf(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock ExchangeRateReaderSvc ---
type MockExchangeRateReader struct {
	mock.Mock
}

func (m *MockExchangeRateReader) GetExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateReader) GetExchangeRateAsOf(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- fixtures ---

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rec(id, accountID, date, balance, currency string) domain.Record {
	return domain.Record{RecordID: id, AccountID: accountID, Date: day(date), Balance: dec(balance), CurrencyCode: currency}
}
