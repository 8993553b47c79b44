package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/dto"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with body as-is
func (h *BaseHandler) Success(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleError converts repository errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	switch {
	case errors.Is(err, integration.ErrOrderNotFound), errors.Is(err, integration.ErrProductNotFound):
		h.Error(c, dto.ErrCodeNotFound, err.Error())
	case errors.Is(err, integration.ErrInvalidArgument):
		h.Error(c, dto.ErrCodeInvalidInput, err.Error())
	case errors.Is(err, integration.ErrOperationFailed):
		logger.GetGinLogger(c).Error("Marketplace operation failed", zap.Error(err))
		h.Error(c, dto.ErrCodeUpstream, err.Error())
	default:
		logger.GetGinLogger(c).Error("Unexpected error", zap.Error(err))
		h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
	}
}
