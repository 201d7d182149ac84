package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

type optionsHandler struct {
	optionsService portssvc.OptionsSvc
}

func registerOptionsRoutes(rg *gin.RouterGroup, optionsService portssvc.OptionsSvc) {
	h := &optionsHandler{optionsService: optionsService}
	rg.GET("/options", h.getOptions)
}

// getOptions godoc
// @Summary Dropdown options for the dashboard filters
// @Description Lists accounts, labels, country codes and currencies, read afresh on every call
// @Tags dashboard
// @Produce  json
// @Param   currency query string false "Preferred currency echoed as defaultCurrency"
// @Success 200 {object} dto.OptionsResponse
// @Failure 500 {object} map[string]string "Failed to load options"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /options [get]
func (h *optionsHandler) getOptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	res, err := h.optionsService.GetOptions(c.Request.Context(), c.Query("currency"))
	if err != nil {
		respondError(c, logger, err, "Failed to load options")
		return
	}
	c.JSON(http.StatusOK, res)
}
