package handlers

import (
	"context"
	"net/http"
	"time"

	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Root(c *gin.Context) {
	utils.APIResponse(c, http.StatusOK, gin.H{"message": "Welcome to the medical records API"})
}

// Ping checks that the database answers within five seconds.
func (h *Handler) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.Log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("database ping failed")
		utils.APIResponse(c, http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}

	stats := sqlDB.Stats()
	utils.APIResponse(c, http.StatusOK, gin.H{
		"status": "healthy",
		"pool": gin.H{
			"max_open":    stats.MaxOpenConnections,
			"open":        stats.OpenConnections,
			"in_use":      stats.InUse,
			"idle":        stats.Idle,
			"wait_count":  stats.WaitCount,
			"wait_millis": stats.WaitDuration.Milliseconds(),
		},
	})
}
