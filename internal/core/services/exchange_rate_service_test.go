package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/core/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ExchangeRateSvcFacade
	ctx              context.Context
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, services.NewCurrencyService(suite.mockCurrencyRepo))
	suite.ctx = context.Background()
}

func (suite *ExchangeRateServiceTestSuite) knownCurrencies(codes ...string) {
	for _, code := range codes {
		suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, code).Return(&domain.Currency{CurrencyCode: code, Precision: 2}, nil)
	}
}

func (suite *ExchangeRateServiceTestSuite) rate(from, to, rate, date string) *domain.ExchangeRate {
	return &domain.ExchangeRate{ExchangeRateID: from + to + date, FromCurrencyCode: from, ToCurrencyCode: to, Rate: dec(rate), DateEffective: day(date)}
}

func (suite *ExchangeRateServiceTestSuite) noRate(from, to string, asOf time.Time) {
	suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, from, to, asOf).Return(nil, apperrors.NewNotFoundError("no rate")).Once()
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	suite.knownCurrencies("EUR", "USD")
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.08"), DateEffective: "2024-05-01"}
	suite.mockRateRepo.On("SaveExchangeRate", suite.ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ExchangeRateID != "" && r.FromCurrencyCode == "EUR" && r.ToCurrencyCode == "USD" &&
			r.Rate.Equal(dec("1.08")) && r.DateEffective.Equal(day("2024-05-01")) && r.CreatedBy == "u1"
	})).Return(suite.rate("EUR", "USD", "1.08", "2024-05-01"), nil).Once()

	rate, err := suite.service.CreateExchangeRate(suite.ctx, req, "u1")

	suite.Require().NoError(err)
	suite.Equal("EUR", rate.FromCurrencyCode)
	suite.Equal("EURUSD2024-05-01", rate.ExchangeRateID)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_ReplacedKeepsStoredID() {
	suite.knownCurrencies("EUR", "USD")
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.09"), DateEffective: "2024-05-01"}
	stored := suite.rate("EUR", "USD", "1.09", "2024-05-01")
	stored.ExchangeRateID = "existing-rate"
	suite.mockRateRepo.On("SaveExchangeRate", suite.ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(stored, nil).Once()

	rate, err := suite.service.CreateExchangeRate(suite.ctx, req, "u1")

	suite.Require().NoError(err)
	suite.Equal("existing-rate", rate.ExchangeRateID)
	suite.True(rate.Rate.Equal(dec("1.09")))
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_RepositoryError() {
	suite.knownCurrencies("EUR", "USD")
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.09")}
	suite.mockRateRepo.On("SaveExchangeRate", suite.ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil, errors.New("connection reset")).Once()

	rate, err := suite.service.CreateExchangeRate(suite.ctx, req, "u1")

	suite.Error(err)
	suite.Nil(rate)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Invalid() {
	suite.knownCurrencies("EUR")
	suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, "XXX").Return(nil, apperrors.NewNotFoundError("currency XXX not found"))

	tests := []struct {
		name string
		req  dto.CreateExchangeRateRequest
	}{
		{"zero rate", dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("0")}},
		{"negative rate", dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("-1")}},
		{"same pair", dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "eur", Rate: dec("1")}},
		{"bad date", dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1"), DateEffective: "May 1"}},
		{"unknown currency", dto.CreateExchangeRateRequest{FromCurrencyCode: "EUR", ToCurrencyCode: "XXX", Rate: dec("1")}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateExchangeRate(suite.ctx, tt.req, "u1")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_SameCurrency() {
	rate, err := suite.service.GetExchangeRateAsOf(suite.ctx, "usd", "USD", day("2024-01-01"))

	suite.Require().NoError(err)
	suite.Equal("1", rate.Rate.String())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRateAsOf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_DirectOnly() {
	asOf := day("2024-03-01")
	suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, "EUR", "USD", asOf).Return(suite.rate("EUR", "USD", "1.1", "2024-02-01"), nil).Once()
	suite.noRate("USD", "EUR", asOf)

	rate, err := suite.service.GetExchangeRateAsOf(suite.ctx, "eur", "usd", asOf)

	suite.Require().NoError(err)
	suite.Equal("1.1", rate.Rate.String())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_InverseOnly() {
	asOf := day("2024-03-01")
	suite.noRate("EUR", "USD", asOf)
	suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, "USD", "EUR", asOf).Return(suite.rate("USD", "EUR", "0.8", "2024-02-01"), nil).Once()

	rate, err := suite.service.GetExchangeRateAsOf(suite.ctx, "EUR", "USD", asOf)

	suite.Require().NoError(err)
	suite.Equal("EUR", rate.FromCurrencyCode)
	suite.Equal("USD", rate.ToCurrencyCode)
	suite.Equal("1.25", rate.Rate.String())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_PicksCloserCandidate() {
	asOf := day("2024-03-01")
	tests := []struct {
		name       string
		directDate string
		inverse    string
		want       string
	}{
		{"inverse more recent", "2024-01-01", "2024-02-01", "1.25"},
		{"direct more recent", "2024-02-15", "2024-02-01", "1.1"},
		{"tie goes to direct", "2024-02-01", "2024-02-01", "1.1"},
		{"earlier beats later", "2024-04-01", "2023-01-01", "1.25"},
		{"both later, sooner wins", "2024-03-05", "2024-03-02", "1.25"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, "EUR", "USD", asOf).Return(suite.rate("EUR", "USD", "1.1", tt.directDate), nil).Once()
			suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, "USD", "EUR", asOf).Return(suite.rate("USD", "EUR", "0.8", tt.inverse), nil).Once()

			rate, err := suite.service.GetExchangeRateAsOf(suite.ctx, "EUR", "USD", asOf)

			suite.Require().NoError(err)
			suite.Equal(tt.want, rate.Rate.String())
		})
	}
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_ZeroInverseIgnored() {
	asOf := day("2024-03-01")
	suite.noRate("EUR", "USD", asOf)
	suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, "USD", "EUR", asOf).Return(suite.rate("USD", "EUR", "0", "2024-02-01"), nil).Once()

	_, err := suite.service.GetExchangeRateAsOf(suite.ctx, "EUR", "USD", asOf)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_RepositoryError() {
	asOf := day("2024-03-01")
	suite.mockRateRepo.On("FindExchangeRateAsOf", suite.ctx, "EUR", "USD", asOf).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetExchangeRateAsOf(suite.ctx, "EUR", "USD", asOf)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateAsOf_BadCode() {
	_, err := suite.service.GetExchangeRateAsOf(suite.ctx, "EURO", "USD", day("2024-03-01"))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func TestCurrencyService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(repo)

	repo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "JPY" && c.Precision == 2 && c.CreatedBy == "u1"
	})).Return(nil).Once()
	cur, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "jpy", Symbol: "¥", Name: "Yen"}, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "JPY", cur.CurrencyCode)

	zero := 0
	repo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool { return c.Precision == 0 })).Return(nil).Once()
	cur, err = svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "KRW", Name: "Won", Precision: &zero}, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 0, cur.Precision)

	tooPrecise := domain.MaxCurrencyPrecision + 1
	_, err = svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "BTC", Name: "Bitcoin", Precision: &tooPrecise}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.On("FindCurrencyByCode", ctx, "GBP").Return(nil, apperrors.NewNotFoundError("currency GBP not found")).Once()
	_, err = svc.GetCurrencyByCode(ctx, "gbp")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.On("ListCurrencies", ctx).Return(nil, nil).Once()
	list, err := svc.ListCurrencies(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, list)

	repo.AssertExpectations(t)
}
