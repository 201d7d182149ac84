package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrMixedCurrency):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response. Client errors echo the error message;
// server errors log it and return fallback instead.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindError writes a 400 for a request that failed gin binding.
func bindError(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}
