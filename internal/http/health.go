package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/constants"
)

// ping is the heartbeat endpoint
func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// health reports whether the database pool can reach the server
func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if s.database == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": constants.HealthStatusUnhealthy})
		return
	}

	if err := s.database.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": constants.HealthStatusUnhealthy,
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  constants.HealthStatusHealthy,
		"service": "houseping",
	})
}
