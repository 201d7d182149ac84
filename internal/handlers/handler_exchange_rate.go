package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Create an exchange rate
// @Description Stores the rate between two currencies effective from a date. A rate for the same pair and date is replaced.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "request format", err)
		return
	}

	creatorUserID := middleware.UserIDOrAnonymous(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create exchange rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode))

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange rate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get the exchange rate between two currencies
// @Description Returns the rate effective on asOf (default today). The opposite pair is used, inverted, when it is the closer match.
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code" MinLength(3) MaxLength(3)
// @Param   to path string true "To Currency Code" MinLength(3) MaxLength(3)
// @Param   asOf query string false "Effective date, YYYY-MM-DD"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to := c.Param("from"), c.Param("to")
	logger = logger.With(slog.String("from", from), slog.String("to", to))

	var params dto.GetExchangeRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "query parameters", err)
		return
	}

	asOf := time.Now()
	if params.AsOf != "" {
		// format already checked by binding
		asOf, _ = time.Parse(dto.DateLayout, params.AsOf)
	}

	rate, err := h.exchangeRateService.GetExchangeRateAsOf(c.Request.Context(), from, to, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
