package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

type entitiesHandler struct {
	registry portssvc.EntityRegistry
}

func registerEntityRoutes(rg *gin.RouterGroup, registry portssvc.EntityRegistry) {
	h := &entitiesHandler{registry: registry}
	rg.DELETE("/entities/:kind", h.deleteEntities)
}

// deleteEntities godoc
// @Summary Delete entities in bulk
// @Description Deletes accounts, labels or records by ID. Unknown IDs are ignored.
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   kind path string true "Entity kind" Enums(account, label, record)
// @Param   ids body dto.DeleteEntitiesRequest true "IDs to delete"
// @Success 200 {object} dto.DeleteEntitiesResponse
// @Failure 400 {object} map[string]string "Unknown kind or invalid body"
// @Failure 500 {object} map[string]string "Failed to delete entities"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /entities/{kind} [delete]
func (h *entitiesHandler) deleteEntities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, err := domain.ParseEntityKind(c.Param("kind"))
	if err != nil {
		respondError(c, logger, fmt.Errorf("%w: %v", apperrors.ErrValidation, err), "Failed to delete entities")
		return
	}

	var req dto.DeleteEntitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "request format", err)
		return
	}

	logger = logger.With(slog.String("kind", string(kind)), slog.Int("requested", len(req.IDs)))
	deleted, err := h.registry.DeleteEntities(c.Request.Context(), kind, req.IDs)
	if err != nil {
		respondError(c, logger, err, "Failed to delete entities")
		return
	}

	logger.Info("Entities deleted", slog.Int64("deleted", deleted))
	c.JSON(http.StatusOK, dto.DeleteEntitiesResponse{Kind: string(kind), Deleted: deleted})
}
