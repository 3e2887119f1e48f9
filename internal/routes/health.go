package routes

import (
	"context"
	"net/http"
	"time"

	"FinControl/internal/contracts"
	"FinControl/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	if h.Ping == nil {
		c.JSON(http.StatusOK, contracts.HealthResponse{Status: "ok", Database: "unknown"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("health_check_failed")
		c.JSON(http.StatusServiceUnavailable, contracts.HealthResponse{Status: "degraded", Database: "down"})
		return
	}

	c.JSON(http.StatusOK, contracts.HealthResponse{Status: "ok", Database: "up"})
}
