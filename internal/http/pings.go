package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/domain"
	"github.com/houseping/internal/httputil"
)

// listPings returns the user's pings, newest first
func (s *Server) listPings(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)

	limit, err := httputil.ParseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	pings, err := s.pingService.ListPings(c.Request.Context(), userID, limit)
	if err != nil {
		s.handleServiceError(c, "list pings", err)
		return
	}

	c.JSON(http.StatusOK, pings)
}

// createPing posts a check-in. An empty body is a ping without a message.
func (s *Server) createPing(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := getUserIDFromContext(c)

	var req domain.CreatePingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "invalid create ping request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	ping, err := s.pingService.CreatePing(ctx, userID, req)
	if err != nil {
		s.handleServiceError(c, "create ping", err)
		return
	}

	c.JSON(http.StatusCreated, ping)
}

// getPing returns one of the user's pings
func (s *Server) getPing(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)

	pingID, err := httputil.ValidateAndGetPingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ping, err := s.pingService.GetPing(c.Request.Context(), userID, pingID)
	if err != nil {
		s.handleServiceError(c, "get ping", err)
		return
	}

	c.JSON(http.StatusOK, ping)
}

// deletePing removes one of the user's pings
func (s *Server) deletePing(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)

	pingID, err := httputil.ValidateAndGetPingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := s.pingService.DeletePing(c.Request.Context(), userID, pingID); err != nil {
		s.handleServiceError(c, "delete ping", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getPingSummary returns the user's ping count and latest ping
func (s *Server) getPingSummary(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)

	summary, err := s.pingService.Summary(c.Request.Context(), userID)
	if err != nil {
		s.handleServiceError(c, "get ping summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
