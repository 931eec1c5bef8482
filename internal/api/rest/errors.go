package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/api/shared/errors"
	"github.com/ispcore/ipam/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.Envelope(errors.NewBadRequestError(message, details...)))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.Envelope(errors.NewNotFoundError(message, details...)))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusUnprocessableEntity, errors.Envelope(errors.NewValidationError(details)))
}

// respondError maps a domain error to its status; server-side failures are logged
func respondError(c *gin.Context, err error, fields ...zap.Field) {
	status, apiErr := errors.FromDomainError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	}
	c.JSON(status, errors.Envelope(apiErr))
}
