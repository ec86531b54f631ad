package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/pkg/logger"
)

// Pinger reports whether a backing store is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness checks
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController. db may be nil.
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health reports service and database status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse} "Service healthy"
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse} "Database unreachable"
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "unknown"}
	status := http.StatusOK

	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("Health check database ping failed")
			resp.Status = "degraded"
			resp.Database = "down"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "up"
		}
	}

	ctx.JSON(status, dto.APIResponse{Success: status == http.StatusOK, Data: resp, Timestamp: time.Now()})
}

// Ping is the bare liveness probe.
func (h *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}
