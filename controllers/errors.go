package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sweetshop/apperr"
)

// respondError maps a service error kind to its HTTP status. Internal
// failures are logged with their cause and surfaced opaquely.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validation *apperr.ValidationError
	var conflict *apperr.ConflictError
	var stock *apperr.InsufficientStockError
	var internal *apperr.InternalError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Msg})
	case errors.As(err, &stock):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: stock.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: conflict.Msg})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperr.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrInactive), errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.As(err, &internal):
		h.Log.Error("internal error", zap.Error(internal.Cause))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	default:
		h.Log.Error("unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
	c.Abort()
}

// respondBindError handles a failed body bind: the request shape
// itself is malformed.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	c.Abort()
}
