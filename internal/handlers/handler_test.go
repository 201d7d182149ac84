package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/handlers"
	"github.com/SscSPs/balance_dashboard/internal/platform/config"
	"github.com/SscSPs/balance_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func day(s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	accounts  *MockAccountService
	labels    *MockLabelService
	records   *MockRecordService
	rates     *MockExchangeRateService
	options   *MockOptionsService
	dashboard *MockDashboardService
	entities  *MockEntityRegistry
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.accounts = new(MockAccountService)
	suite.labels = new(MockLabelService)
	suite.records = new(MockRecordService)
	suite.rates = new(MockExchangeRateService)
	suite.options = new(MockOptionsService)
	suite.dashboard = new(MockDashboardService)
	suite.entities = new(MockEntityRegistry)

	container := &portssvc.ServiceContainer{
		Account:      suite.accounts,
		Label:        suite.labels,
		Record:       suite.records,
		Currency:     new(MockCurrencyService),
		ExchangeRate: suite.rates,
		Options:      suite.options,
		Dashboard:    suite.dashboard,
		Entities:     suite.entities,
	}
	cfg := &config.Config{IsProduction: true, AuthEnabled: false}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.accounts.AssertExpectations(suite.T())
	suite.records.AssertExpectations(suite.T())
	suite.rates.AssertExpectations(suite.T())
	suite.dashboard.AssertExpectations(suite.T())
	suite.entities.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			suite.Require().NoError(json.NewEncoder(&buf).Encode(b))
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Name: "Checking", LabelID: "cash", CountryCode: "US"}
	suite.accounts.On("CreateAccount", mock.Anything, req, "anonymous").
		Return(&domain.Account{AccountID: "a1", Name: "Checking", LabelID: "cash", CountryCode: "US"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.AccountResponse
	suite.decode(w, &res)
	suite.Equal("a1", res.AccountID)
	suite.Equal("cash", res.LabelID)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidBody() {
	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"name":`},
		{"missing name", dto.CreateAccountRequest{CountryCode: "US"}},
		{"lowercase country", dto.CreateAccountRequest{Name: "x", CountryCode: "us"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_UnknownLabel() {
	suite.accounts.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: label nope does not exist", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: "x", LabelID: "nope"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "label nope does not exist")
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accounts.On("GetAccountByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("account missing not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_PassesFilter() {
	filter := portsrepo.AccountFilter{CountryCode: "DE"}
	suite.accounts.On("ListAccounts", mock.Anything, filter).
		Return([]domain.Account{{AccountID: "a2", Name: "Brokerage", CountryCode: "DE"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?countryCode=DE", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListAccountsResponse
	suite.decode(w, &res)
	suite.Len(res.Accounts, 1)
}

func (suite *HandlerTestSuite) TestDeleteAccount() {
	suite.accounts.On("DeleteAccounts", mock.Anything, []string{"a1"}).Return(int64(1), nil).Once()
	suite.accounts.On("DeleteAccounts", mock.Anything, []string{"gone"}).Return(int64(0), nil).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/accounts/a1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/accounts/gone", nil).Code)
}

func (suite *HandlerTestSuite) TestDeleteLabel_ServiceError() {
	suite.labels.On("DeleteLabels", mock.Anything, []string{"l1"}).Return(int64(0), fmt.Errorf("connection reset")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/labels/l1", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
	suite.labels.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateRecord() {
	req := dto.CreateRecordRequest{AccountID: "a1", Balance: decimal.RequireFromString("12.50"), CurrencyCode: "USD", Date: "2024-01-31"}
	suite.records.On("CreateRecord", mock.Anything, mock.MatchedBy(func(r dto.CreateRecordRequest) bool {
		return r.AccountID == "a1" && r.Balance.Equal(req.Balance) && r.Date == "2024-01-31"
	}), "anonymous").Return(&domain.Record{
		RecordID: "r1", AccountID: "a1", Balance: req.Balance, CurrencyCode: "USD", Date: day("2024-01-31"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/records", req)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.RecordResponse
	suite.decode(w, &res)
	suite.Equal("2024-01-31", res.Date)
	suite.True(req.Balance.Equal(res.Balance))
}

func (suite *HandlerTestSuite) TestCreateRecord_BadDate() {
	w := suite.do(http.MethodPost, "/api/v1/records", dto.CreateRecordRequest{AccountID: "a1", CurrencyCode: "USD", Date: "31/01/2024"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListRecords_Pagination() {
	next := "dG9rZW4"
	suite.records.On("ListRecords", mock.Anything, mock.MatchedBy(func(p dto.ListRecordsParams) bool {
		return p.Limit == 2 && p.NextToken == "abc" && len(p.AccountIDs) == 2
	})).Return(&portssvc.RecordPage{
		Records: []domain.Record{
			{RecordID: "r3", AccountID: "a1", CurrencyCode: "USD", Date: day("2024-02-01")},
			{RecordID: "r4", AccountID: "a2", CurrencyCode: "USD", Date: day("2024-02-02")},
		},
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/records?limit=2&nextToken=abc&accountID=a1&accountID=a2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListRecordsResponse
	suite.decode(w, &res)
	suite.Len(res.Records, 2)
	suite.Require().NotNil(res.NextToken)
	suite.Equal(next, *res.NextToken)
}

func (suite *HandlerTestSuite) TestListRecords_DefaultLimitAndBounds() {
	suite.records.On("ListRecords", mock.Anything, mock.MatchedBy(func(p dto.ListRecordsParams) bool {
		return p.Limit == 100
	})).Return(&portssvc.RecordPage{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/records", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "nextToken")

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/records?limit=0", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/records?limit=5000", nil).Code)
}

func (suite *HandlerTestSuite) TestListRecords_BadToken() {
	suite.records.On("ListRecords", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("invalid nextToken")).Once()

	w := suite.do(http.MethodGet, "/api/v1/records?nextToken=%25%25", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteEntities() {
	suite.entities.On("DeleteEntities", mock.Anything, domain.EntityRecord, []string{"r1", "r2"}).Return(int64(1), nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/entities/records", dto.DeleteEntitiesRequest{IDs: []string{"r1", "r2"}})

	suite.Equal(http.StatusOK, w.Code)
	var res dto.DeleteEntitiesResponse
	suite.decode(w, &res)
	suite.Equal("record", res.Kind)
	suite.Equal(int64(1), res.Deleted)
}

func (suite *HandlerTestSuite) TestDeleteEntities_Invalid() {
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodDelete, "/api/v1/entities/users", dto.DeleteEntitiesRequest{IDs: []string{"u1"}}).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodDelete, "/api/v1/entities/account", dto.DeleteEntitiesRequest{}).Code)
	suite.entities.AssertNotCalled(suite.T(), "DeleteEntities", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetExchangeRate_AsOf() {
	suite.rates.On("GetExchangeRateAsOf", mock.Anything, "EUR", "USD", day("2024-03-01")).
		Return(&domain.ExchangeRate{
			FromCurrencyCode: "EUR", ToCurrencyCode: "USD",
			Rate: decimal.RequireFromString("1.1"), DateEffective: day("2024-02-28"),
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/EUR/USD?asOf=2024-03-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ExchangeRateResponse
	suite.decode(w, &res)
	suite.Equal("2024-02-28", res.DateEffective)
	suite.Equal("1.1", res.Rate.String())
}

func (suite *HandlerTestSuite) TestGetExchangeRate_Missing() {
	suite.rates.On("GetExchangeRateAsOf", mock.Anything, "EUR", "JPY", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewNotFoundError("no exchange rate from EUR to JPY")).Once()

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/exchange-rates/EUR/JPY", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/exchange-rates/EUR/JPY?asOf=yesterday", nil).Code)
}

func (suite *HandlerTestSuite) TestGetCurrency_BadCode() {
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/currencies/US", nil).Code)
}

func (suite *HandlerTestSuite) TestOptions() {
	suite.options.On("GetOptions", mock.Anything, "usd").Return(&dto.OptionsResponse{
		Accounts:        []dto.Option{{Label: "Checking", Value: "a1"}},
		Labels:          []dto.Option{},
		CountryCodes:    []dto.Option{{Label: "US", Value: "US"}},
		Currencies:      []dto.Option{{Label: "US Dollar", Value: "USD"}},
		DefaultCurrency: "USD",
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/options?currency=usd", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.OptionsResponse
	suite.decode(w, &res)
	suite.Equal("USD", res.DefaultCurrency)
	suite.Len(res.Accounts, 1)
	suite.options.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) tableView() *portssvc.DashboardView {
	rows, err := analytics.Compile([]domain.Record{
		{RecordID: "r1", AccountID: "a1", Balance: decimal.NewFromInt(100), CurrencyCode: "USD", Date: day("2024-01-01")},
		{RecordID: "r2", AccountID: "a2", Balance: decimal.NewFromInt(50), CurrencyCode: "USD", Date: day("2024-01-01")},
	}, []domain.Account{{AccountID: "a1", Name: "Checking"}}, nil)
	suite.Require().NoError(err)
	field := analytics.BalanceFieldFor("USD")
	withTotal, err := analytics.SynthesizeTotal(rows, field)
	suite.Require().NoError(err)
	return &portssvc.DashboardView{Currency: "USD", Field: field, Rows: withTotal}
}

func (suite *HandlerTestSuite) TestDashboardTable_JSON() {
	suite.dashboard.On("Table", mock.Anything, mock.MatchedBy(func(q portssvc.DashboardQuery) bool {
		return q.Currency == "USD" && q.WithTotal && q.Filter.From != nil && q.Filter.From.Equal(day("2024-01-01")) &&
			len(q.Filter.CountryCodes) == 1 && q.Filter.CountryCodes[0] == "US"
	})).Return(suite.tableView(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/table?currency=USD&withTotal=true&from=2024-01-01&countryCode=US", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.TableResponse
	suite.decode(w, &res)
	suite.Equal("balance_USD", res.BalanceField)
	suite.Contains(res.Columns, "balance_USD")
	suite.Len(res.Rows, 3)
}

func (suite *HandlerTestSuite) TestDashboardTable_CSV() {
	suite.dashboard.On("Table", mock.Anything, mock.Anything).Return(suite.tableView(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/table?format=csv&withTotal=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	suite.Contains(w.Header().Get("Content-Disposition"), "balances_USD.csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	suite.Len(lines, 4)
	suite.True(strings.HasPrefix(lines[0], "id_record,account_id,balance_USD"))
	suite.True(strings.HasSuffix(lines[0], ",contributors"))
	suite.Contains(lines[3], "Total")
	suite.True(strings.HasSuffix(lines[3], ",2"))
}

func (suite *HandlerTestSuite) TestDashboardTable_Errors() {
	suite.dashboard.On("Table", mock.Anything, mock.MatchedBy(func(q portssvc.DashboardQuery) bool { return q.Currency == "EUR" })).
		Return(nil, fmt.Errorf("total: %w", apperrors.ErrMixedCurrency)).Once()
	suite.dashboard.On("Table", mock.Anything, mock.MatchedBy(func(q portssvc.DashboardQuery) bool { return q.Currency == "JPY" })).
		Return(nil, apperrors.NewNotFoundError("no exchange rate from USD to JPY")).Once()

	suite.Equal(http.StatusUnprocessableEntity, suite.do(http.MethodGet, "/api/v1/dashboard/table?currency=EUR", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/dashboard/table?currency=JPY", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/dashboard/table?format=xml", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/dashboard/table?from=2024-13-01", nil).Code)
}

func (suite *HandlerTestSuite) TestDashboardLineChart() {
	suite.dashboard.On("LineChart", mock.Anything, mock.Anything).Return("USD", []analytics.Series{
		{Name: "Checking", AccountID: "a1", Points: []analytics.SeriesPoint{{Date: day("2024-01-01"), Balance: decimal.NewFromInt(100)}}},
		{Name: analytics.TotalAccountName, Synthetic: true, Points: []analytics.SeriesPoint{{Date: day("2024-01-01"), Balance: decimal.NewFromInt(100), Contributors: 1}}},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/line-chart", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.LineChartResponse
	suite.decode(w, &res)
	suite.Require().Len(res.Series, 2)
	suite.True(res.Series[1].Synthetic)
	suite.Equal("2024-01-01", res.Series[1].Points[0].Date)
	suite.Equal(1, res.Series[1].Points[0].Contributors)
	suite.NotContains(w.Body.String(), `"contributors":0`)
}

func (suite *HandlerTestSuite) TestDashboardTreemap() {
	suite.dashboard.On("Treemap", mock.Anything, mock.Anything).Return("USD", suite.tableView().Rows[:2], nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/treemap", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.TreemapResponse
	suite.decode(w, &res)
	suite.Equal("150", res.Total.String())
}

func (suite *HandlerTestSuite) TestDashboardAligned() {
	rows := suite.tableView().Rows
	table := analytics.Align(rows)
	suite.dashboard.On("Aligned", mock.Anything, mock.Anything).Return("USD", &table, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/aligned", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.AlignedResponse
	suite.decode(w, &res)
	suite.Equal([]string{"2024-01-01"}, res.Dates)
	suite.Require().Len(res.Totals, 1)
	suite.Equal(2, res.Totals[0].Contributors)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestRoutes_AuthEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := utils.TokenIssuer{Secret: "test-secret-key-that-is-long-enough", Issuer: "balance-test", Expiry: time.Hour}
	cfg := &config.Config{
		IsProduction:      true,
		AuthEnabled:       true,
		JWTSecret:         issuer.Secret,
		JWTIssuer:         issuer.Issuer,
		JWTExpiryDuration: issuer.Expiry,
	}
	accounts := new(MockAccountService)
	accounts.On("CreateAccount", mock.Anything, mock.Anything, "alice").
		Return(&domain.Account{AccountID: "a1", Name: "Checking", AuditFields: domain.AuditFields{CreatedBy: "alice"}}, nil).Once()

	r := gin.New()
	if err := handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{Account: accounts}); err != nil {
		t.Fatal(err)
	}

	send := func(authHeader string) int {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name":"Checking"}`))
		req.Header.Set("Content-Type", "application/json")
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(""); code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d", code)
	}
	if code := send("Bearer not-a-token"); code != http.StatusUnauthorized {
		t.Fatalf("bad token: got %d", code)
	}
	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	if code := send("Bearer " + token); code != http.StatusCreated {
		t.Fatalf("valid token: got %d", code)
	}
	accounts.AssertExpectations(t)
}
