package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/dto"
)

// SystemHandler serves the unauthenticated liveness probe
type SystemHandler struct {
	BaseHandler
	service string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(service string) *SystemHandler {
	return &SystemHandler{service: service}
}

// Health reports that the process is up. It does not call the marketplace.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: h.service,
		Version: telemetry.ServiceVersion,
	})
}
