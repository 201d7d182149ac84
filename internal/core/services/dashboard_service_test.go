package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLabelRepo   *MockLabelRepository
	mockRecordRepo  *MockRecordRepository
	mockRates       *MockExchangeRateReader
	service         portssvc.DashboardSvc
	ctx             context.Context
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLabelRepo = new(MockLabelRepository)
	suite.mockRecordRepo = new(MockRecordRepository)
	suite.mockRates = new(MockExchangeRateReader)
	records := services.NewRecordService(suite.mockRecordRepo, services.WithExchangeRates(suite.mockRates))
	suite.service = services.NewDashboardService(suite.mockAccountRepo, suite.mockLabelRepo, records, "usd")
	suite.ctx = context.Background()
}

func (suite *DashboardServiceTestSuite) snapshot(records ...domain.Record) {
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, portsrepo.AccountFilter{}).Return([]domain.Account{
		{AccountID: "a1", Name: "Checking", LabelID: "cash", CountryCode: "US"},
		{AccountID: "a2", Name: "Brokerage", LabelID: "invest", CountryCode: "DE"},
	}, nil).Once()
	suite.mockLabelRepo.On("ListLabels", suite.ctx).Return([]domain.Label{
		{LabelID: "cash", Name: "Cash"},
		{LabelID: "invest", Name: "Investments"},
	}, nil).Once()
	suite.mockRecordRepo.On("ListRecords", suite.ctx, portsrepo.RecordQuery{}).Return(records, nil).Once()
}

func (suite *DashboardServiceTestSuite) TestTable_WithTotal() {
	suite.snapshot(
		rec("r1", "a1", "2024-01-01", "100", "USD"),
		rec("r2", "a2", "2024-01-01", "50", "USD"),
	)

	view, err := suite.service.Table(suite.ctx, portssvc.DashboardQuery{WithTotal: true})

	suite.Require().NoError(err)
	suite.Equal("USD", view.Currency)
	suite.Equal(analytics.BalanceFieldFor("USD"), view.Field)
	suite.Require().Len(view.Rows, 3)
	total := view.Rows[2]
	suite.True(total.Synthetic)
	suite.Equal("150", total.Balance.String())
	suite.Equal("Cash", *view.Rows[0].LabelName)
}

func (suite *DashboardServiceTestSuite) TestTable_ConvertsBeforeTotal() {
	suite.snapshot(
		rec("r1", "a1", "2024-01-01", "100", "USD"),
		rec("r2", "a2", "2024-01-01", "50", "EUR"),
	)
	suite.mockRates.On("GetExchangeRateAsOf", suite.ctx, "EUR", "USD", day("2024-01-01")).
		Return(&domain.ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("2")}, nil).Once()

	view, err := suite.service.Table(suite.ctx, portssvc.DashboardQuery{WithTotal: true})

	suite.Require().NoError(err)
	suite.Require().Len(view.Rows, 3)
	suite.Equal("USD", view.Rows[1].CurrencyCode)
	suite.Equal("200", view.Rows[2].Balance.String())
}

func (suite *DashboardServiceTestSuite) TestTable_FilterWithoutTotal() {
	suite.snapshot(
		rec("r1", "a1", "2024-01-01", "100", "USD"),
		rec("r2", "a2", "2024-01-01", "50", "USD"),
	)

	view, err := suite.service.Table(suite.ctx, portssvc.DashboardQuery{Filter: analytics.RowFilter{CountryCodes: []string{"DE"}}})

	suite.Require().NoError(err)
	suite.Require().Len(view.Rows, 1)
	suite.Equal("r2", view.Rows[0].RecordID)
}

func (suite *DashboardServiceTestSuite) TestLineChart() {
	suite.snapshot(
		rec("r1", "a1", "2024-01-01", "100", "USD"),
		rec("r2", "a1", "2024-01-10", "200", "USD"),
		rec("r3", "a2", "2024-01-05", "10", "USD"),
	)

	currency, series, err := suite.service.LineChart(suite.ctx, portssvc.DashboardQuery{Currency: "usd"})

	suite.Require().NoError(err)
	suite.Equal("USD", currency)
	suite.Require().Len(series, 3)
	suite.Equal("Brokerage", series[0].Name)
	suite.Equal("Checking", series[1].Name)
	suite.Equal(analytics.TotalAccountName, series[2].Name)
	suite.Len(series[2].Points, 3)
}

func (suite *DashboardServiceTestSuite) TestTreemap() {
	suite.snapshot(
		rec("r1", "a1", "2024-01-01", "100", "USD"),
		rec("r2", "a1", "2024-02-01", "130", "USD"),
		rec("r3", "a2", "2024-01-01", "50", "USD"),
	)

	_, latest, err := suite.service.Treemap(suite.ctx, portssvc.DashboardQuery{})

	suite.Require().NoError(err)
	suite.Require().Len(latest, 2)
	suite.Equal("r2", latest[0].RecordID)
	suite.Equal("r3", latest[1].RecordID)
}

func (suite *DashboardServiceTestSuite) TestAligned() {
	suite.snapshot(
		rec("r1", "a1", "2024-01-01", "100", "USD"),
		rec("r2", "a2", "2024-01-02", "50", "USD"),
	)

	_, table, err := suite.service.Aligned(suite.ctx, portssvc.DashboardQuery{})

	suite.Require().NoError(err)
	suite.Equal([]string{"a1", "a2"}, table.Accounts)
	suite.Len(table.Dates, 2)
}

func (suite *DashboardServiceTestSuite) TestCompileError() {
	suite.snapshot(domain.Record{AccountID: "a1", CurrencyCode: "USD"})

	_, err := suite.service.Table(suite.ctx, portssvc.DashboardQuery{})

	suite.ErrorIs(err, apperrors.ErrInvalidEntity)
}

func (suite *DashboardServiceTestSuite) TestRepositoryError() {
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, portsrepo.AccountFilter{}).Return(nil, assert.AnError).Once()

	_, _, err := suite.service.Treemap(suite.ctx, portssvc.DashboardQuery{})

	suite.ErrorIs(err, assert.AnError)
	suite.mockLabelRepo.AssertNotCalled(suite.T(), "ListLabels", suite.ctx)
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func TestOptionsService(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	labels := new(MockLabelRepository)
	currencies := new(MockCurrencyRepository)
	svc := services.NewOptionsService(accounts, labels, currencies, "eur")

	accounts.On("ListAccounts", ctx, portsrepo.AccountFilter{}).Return([]domain.Account{
		{AccountID: "a1", Name: "Checking", CountryCode: "US"},
		{AccountID: "a2", Name: "Pension", CountryCode: "DE"},
		{AccountID: "a3", Name: "Savings", CountryCode: "US"},
		{AccountID: "a4", Name: "Cash"},
	}, nil)
	labels.On("ListLabels", ctx).Return([]domain.Label{{LabelID: "l1", Name: "Liquid"}}, nil)
	currencies.On("ListCurrencies", ctx).Return([]domain.Currency{{CurrencyCode: "EUR"}, {CurrencyCode: "USD"}}, nil)

	res, err := svc.GetOptions(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, "EUR", res.DefaultCurrency)
	assert.Len(t, res.Accounts, 4)
	assert.Equal(t, "a2", res.Accounts[1].Value)
	assert.Equal(t, "Pension", res.Accounts[1].Label)
	assert.Len(t, res.CountryCodes, 2)
	assert.Equal(t, "DE", res.CountryCodes[0].Value)
	assert.Equal(t, "US", res.CountryCodes[1].Value)
	assert.Len(t, res.Labels, 1)
	assert.Len(t, res.Currencies, 2)

	res, err = svc.GetOptions(ctx, "usd")
	assert.NoError(t, err)
	assert.Equal(t, "USD", res.DefaultCurrency)
}

func TestEntityRegistry(t *testing.T) {
	ctx := context.Background()
	var got []string
	registry := services.NewEntityRegistry(map[domain.EntityKind]portssvc.Deleter{
		domain.EntityRecord: portssvc.DeleterFunc(func(_ context.Context, ids []string) (int64, error) {
			got = ids
			return int64(len(ids)), nil
		}),
		domain.EntityLabel: portssvc.DeleterFunc(func(context.Context, []string) (int64, error) {
			return 0, assert.AnError
		}),
	})

	n, err := registry.DeleteEntities(ctx, domain.EntityRecord, []string{"r1", "r2"})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, []string{"r1", "r2"}, got)

	_, err = registry.DeleteEntities(ctx, domain.EntityLabel, []string{"l1"})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = registry.DeleteEntities(ctx, domain.EntityAccount, []string{"a1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
