package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/domain"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleServiceError maps a service error onto a status code and JSON body
func (s *Server) handleServiceError(c *gin.Context, operation string, err error) {
	ctx := c.Request.Context()

	switch {
	case domain.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: domain.PublicMessage(err)})
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.PublicMessage(err)})
	case domain.IsValidationError(err):
		slog.WarnContext(ctx, "rejected request", "operation", operation, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.PublicMessage(err)})
	case domain.IsUpstreamError(err):
		slog.ErrorContext(ctx, "identity provider error", "operation", operation, "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: domain.PublicMessage(err)})
	default:
		slog.ErrorContext(ctx, "request failed", "operation", operation, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to " + operation,
			Details: domain.PublicMessage(err),
		})
	}
}
