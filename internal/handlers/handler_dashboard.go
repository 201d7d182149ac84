package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the analysis views.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: dashboardService}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/table", h.getTable)
		dashboard.GET("/line-chart", h.getLineChart)
		dashboard.GET("/treemap", h.getTreemap)
		dashboard.GET("/aligned", h.getAligned)
	}
}

// bindQuery binds the shared filter parameters. It writes the error response and
// returns false when they are invalid.
func (h *dashboardHandler) bindQuery(c *gin.Context, logger *slog.Logger) (dto.DashboardParams, portssvc.DashboardQuery, bool) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "query parameters", err)
		return params, portssvc.DashboardQuery{}, false
	}
	filter, err := params.RowFilter()
	if err != nil {
		respondError(c, logger, err, "Invalid query parameters")
		return params, portssvc.DashboardQuery{}, false
	}
	return params, portssvc.DashboardQuery{
		Currency:  params.Currency,
		Filter:    filter,
		WithTotal: params.WithTotal,
	}, true
}

// getTable godoc
// @Summary Compiled balance table
// @Description Every record joined with its account and label, converted to one currency. withTotal appends the interpolated Total rows.
// @Tags dashboard
// @Produce  json
// @Produce  text/csv
// @Param   currency query string false "Target currency (default from config)"
// @Param   accountID query []string false "Account filter" collectionFormat(multi)
// @Param   countryCode query []string false "Country filter" collectionFormat(multi)
// @Param   labelID query []string false "Label filter" collectionFormat(multi)
// @Param   from query string false "Earliest date (inclusive), YYYY-MM-DD"
// @Param   to query string false "Latest date (inclusive), YYYY-MM-DD"
// @Param   withTotal query bool false "Append the synthetic Total rows"
// @Param   format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.TableResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Missing exchange rate"
// @Failure 422 {object} map[string]string "Rows in different currencies"
// @Failure 500 {object} map[string]string "Failed to build table"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/table [get]
func (h *dashboardHandler) getTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, query, ok := h.bindQuery(c, logger)
	if !ok {
		return
	}

	view, err := h.dashboardService.Table(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build table")
		return
	}
	table := analytics.NewTable(view.Rows, view.Field)

	if params.Format == "csv" {
		c.Header("Content-Disposition", `attachment; filename="balances_`+view.Currency+`.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := table.WriteCSV(c.Writer); err != nil {
			logger.Error("Failed to write csv", slog.String("error", err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTableResponse(view.Currency, view.Field, table))
}

// getLineChart godoc
// @Summary Balance series per account
// @Description One series per account plus the interpolated Total series
// @Tags dashboard
// @Produce  json
// @Param   currency query string false "Target currency (default from config)"
// @Param   accountID query []string false "Account filter" collectionFormat(multi)
// @Param   countryCode query []string false "Country filter" collectionFormat(multi)
// @Param   labelID query []string false "Label filter" collectionFormat(multi)
// @Param   from query string false "Earliest date (inclusive), YYYY-MM-DD"
// @Param   to query string false "Latest date (inclusive), YYYY-MM-DD"
// @Success 200 {object} dto.LineChartResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build line chart"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/line-chart [get]
func (h *dashboardHandler) getLineChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, query, ok := h.bindQuery(c, logger)
	if !ok {
		return
	}

	currency, series, err := h.dashboardService.LineChart(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build line chart")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineChartResponse(currency, series))
}

// getTreemap godoc
// @Summary Latest balances grouped by label
// @Tags dashboard
// @Produce  json
// @Param   currency query string false "Target currency (default from config)"
// @Param   accountID query []string false "Account filter" collectionFormat(multi)
// @Param   countryCode query []string false "Country filter" collectionFormat(multi)
// @Param   labelID query []string false "Label filter" collectionFormat(multi)
// @Param   from query string false "Earliest date (inclusive), YYYY-MM-DD"
// @Param   to query string false "Latest date (inclusive), YYYY-MM-DD"
// @Success 200 {object} dto.TreemapResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build treemap"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/treemap [get]
func (h *dashboardHandler) getTreemap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, query, ok := h.bindQuery(c, logger)
	if !ok {
		return
	}

	currency, latest, err := h.dashboardService.Treemap(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build treemap")
		return
	}
	c.JSON(http.StatusOK, dto.ToTreemapResponse(currency, latest))
}

// getAligned godoc
// @Summary Interpolated date x account matrix
// @Description Every account's balance on every observed date, with per-date totals and contributor counts
// @Tags dashboard
// @Produce  json
// @Param   currency query string false "Target currency (default from config)"
// @Param   accountID query []string false "Account filter" collectionFormat(multi)
// @Param   countryCode query []string false "Country filter" collectionFormat(multi)
// @Param   labelID query []string false "Label filter" collectionFormat(multi)
// @Param   from query string false "Earliest date (inclusive), YYYY-MM-DD"
// @Param   to query string false "Latest date (inclusive), YYYY-MM-DD"
// @Success 200 {object} dto.AlignedResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build aligned table"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/aligned [get]
func (h *dashboardHandler) getAligned(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, query, ok := h.bindQuery(c, logger)
	if !ok {
		return
	}

	currency, table, err := h.dashboardService.Aligned(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build aligned table")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlignedResponse(currency, *table))
}
