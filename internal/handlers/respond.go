package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/middleware"
)

// respondError maps service errors to HTTP status codes. Sentinel errors
// carry their message to the client; anything else becomes an opaque 500.
func respondError(c *gin.Context, logger *slog.Logger, err error, logMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": logMsg})
	}
}

// pathID parses the :id path parameter. On failure it writes the 400
// response and returns false.
func pathID(c *gin.Context, logger *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Warn("Invalid id path parameter", slog.String("raw", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: must be an integer"})
		return 0, false
	}
	return id, true
}

// actorFromContext extracts the authenticated agent ID. On failure it writes
// the 401 response and returns false.
func actorFromContext(c *gin.Context, logger *slog.Logger) (int64, bool) {
	actorID, ok := middleware.GetAgentIDFromContext(c)
	if !ok {
		logger.Error("Agent ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return actorID, true
}
