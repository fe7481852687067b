package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/auth"
	"github.com/houseping/internal/domain"
)

// getCurrentUser returns the logged-in user's profile
func (s *Server) getCurrentUser(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)

	user, err := s.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			// the account is gone; drop the stale session
			session := getSession(c)
			auth.Clear(session)
			if !s.saveSession(c, session) {
				return
			}
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "Not authenticated",
				Details: "Please login to continue",
			})
			return
		}
		s.handleServiceError(c, "get current user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
