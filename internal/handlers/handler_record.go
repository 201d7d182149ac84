package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := &recordHandler{recordService: recordService}

	records := rg.Group("/records")
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
		records.GET("/:recordID", h.getRecord)
		records.DELETE("/:recordID", h.deleteRecord)
	}
}

// createRecord godoc
// @Summary Record a balance observation
// @Description Stores the balance of an account on a date
// @Tags records
// @Accept  json
// @Produce  json
// @Param   record body dto.CreateRecordRequest true "Record details"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown account/currency"
// @Failure 500 {object} map[string]string "Failed to create record"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "request format", err)
		return
	}

	logger.Info("Received request to create record", slog.String("account_id", req.AccountID), slog.String("date", req.Date))
	record, err := h.recordService.CreateRecord(c.Request.Context(), req, middleware.UserIDOrAnonymous(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create record")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// getRecord godoc
// @Summary Get a record by ID
// @Tags records
// @Produce  json
// @Param   recordID path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to retrieve record"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /records/{recordID} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	record, err := h.recordService.GetRecordByID(c.Request.Context(), c.Param("recordID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve record")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// listRecords godoc
// @Summary List records
// @Description Lists records ordered by date, then ID, one page at a time
// @Tags records
// @Produce  json
// @Param   accountID query []string false "Only records of these accounts" collectionFormat(multi)
// @Param   from query string false "Earliest date (inclusive), YYYY-MM-DD"
// @Param   to query string false "Latest date (inclusive), YYYY-MM-DD"
// @Param   limit query int false "Page size" default(100)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list records"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "query parameters", err)
		return
	}

	page, err := h.recordService.ListRecords(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list records")
		return
	}

	logger.Debug("Records listed", slog.Int("count", len(page.Records)), slog.Bool("has_more", page.NextToken != nil))
	c.JSON(http.StatusOK, dto.ListRecordsResponse{
		Records:   dto.ToListRecordResponse(page.Records),
		NextToken: page.NextToken,
	})
}

// deleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Param   recordID path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to delete record"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /records/{recordID} [delete]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	deleted, err := h.recordService.DeleteRecords(c.Request.Context(), []string{recordID})
	if err == nil && deleted == 0 {
		err = apperrors.NewNotFoundError("record " + recordID + " not found")
	}
	if err != nil {
		respondError(c, logger, err, "Failed to delete record")
		return
	}
	c.Status(http.StatusNoContent)
}
