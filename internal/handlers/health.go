package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/db"
	"github.com/foreman-dev/foreman/internal/utils"
)

const healthTimeout = 2 * time.Second

func (h *Handler) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK

	if err := db.Ping(pingCtx, h.db); err != nil {
		utils.Logger(ctx).Warn("database ping failed", "error", err)
		status, code = "degraded", http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"message":   "Construction Management API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
