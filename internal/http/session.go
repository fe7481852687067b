package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/houseping/internal/auth"
)

const (
	contextKeySession = "session"
	contextKeyUserID  = "userID"
)

// sessionMiddleware attaches the cookie session to every request. A cookie that fails
// to decode (tampered, expired, or issued by a previous process) is replaced by an
// empty session rather than failing the request.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := s.sessions.Get(c.Request)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "discarding unreadable session cookie", "error", err)
		}
		c.Set(contextKeySession, session)
		c.Next()
	}
}

// getSession returns the request's session
func getSession(c *gin.Context) *sessions.Session {
	if value, exists := c.Get(contextKeySession); exists {
		if session, ok := value.(*sessions.Session); ok {
			return session
		}
	}
	return nil
}

// saveSession writes the session cookie; must run before the response body is written
func (s *Server) saveSession(c *gin.Context, session *sessions.Session) bool {
	if err := s.sessions.Save(c.Request, c.Writer, session); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to save session", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save session"})
		return false
	}
	return true
}

// requireUser returns a Gin middleware that requires a logged-in session
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(getSession(c))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "Not authenticated",
				Details: "Please login to continue",
			})
			return
		}

		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// getUserIDFromContext extracts the authenticated user from context
func getUserIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(contextKeyUserID)
	return userID, userID != ""
}
