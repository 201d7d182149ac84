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

type labelHandler struct {
	labelService portssvc.LabelSvcFacade
}

func registerLabelRoutes(rg *gin.RouterGroup, labelService portssvc.LabelSvcFacade) {
	h := &labelHandler{labelService: labelService}

	labels := rg.Group("/labels")
	{
		labels.POST("", h.createLabel)
		labels.GET("", h.listLabels)
		labels.GET("/:labelID", h.getLabel)
		labels.DELETE("/:labelID", h.deleteLabel)
	}
}

// createLabel godoc
// @Summary Create a label
// @Tags labels
// @Accept  json
// @Produce  json
// @Param   label body dto.CreateLabelRequest true "Label details"
// @Success 201 {object} dto.LabelResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create label"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /labels [post]
func (h *labelHandler) createLabel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "request format", err)
		return
	}

	label, err := h.labelService.CreateLabel(c.Request.Context(), req, middleware.UserIDOrAnonymous(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create label")
		return
	}

	logger.Info("Label created successfully", slog.String("label_id", label.LabelID))
	c.JSON(http.StatusCreated, dto.ToLabelResponse(label))
}

// getLabel godoc
// @Summary Get a label by ID
// @Tags labels
// @Produce  json
// @Param   labelID path string true "Label ID"
// @Success 200 {object} dto.LabelResponse
// @Failure 404 {object} map[string]string "Label not found"
// @Failure 500 {object} map[string]string "Failed to retrieve label"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /labels/{labelID} [get]
func (h *labelHandler) getLabel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	label, err := h.labelService.GetLabelByID(c.Request.Context(), c.Param("labelID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve label")
		return
	}
	c.JSON(http.StatusOK, dto.ToLabelResponse(label))
}

// listLabels godoc
// @Summary List labels
// @Tags labels
// @Produce  json
// @Success 200 {object} dto.ListLabelsResponse
// @Failure 500 {object} map[string]string "Failed to list labels"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /labels [get]
func (h *labelHandler) listLabels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	labels, err := h.labelService.ListLabels(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list labels")
		return
	}
	c.JSON(http.StatusOK, dto.ListLabelsResponse{Labels: dto.ToListLabelResponse(labels)})
}

// deleteLabel godoc
// @Summary Delete a label
// @Description Deletes a label. Accounts using it become unlabelled.
// @Tags labels
// @Param   labelID path string true "Label ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Label not found"
// @Failure 500 {object} map[string]string "Failed to delete label"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /labels/{labelID} [delete]
func (h *labelHandler) deleteLabel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	labelID := c.Param("labelID")

	deleted, err := h.labelService.DeleteLabels(c.Request.Context(), []string{labelID})
	if err == nil && deleted == 0 {
		err = apperrors.NewNotFoundError("label " + labelID + " not found")
	}
	if err != nil {
		respondError(c, logger, err, "Failed to delete label")
		return
	}
	c.Status(http.StatusNoContent)
}
