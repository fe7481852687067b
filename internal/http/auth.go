package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/auth"
	"github.com/houseping/internal/domain"
	"github.com/houseping/internal/httputil"
)

// Auth flow:
//  1. GET /api/auth/:provider/login stores state and a PKCE verifier in the session
//     and redirects to the provider
//  2. the provider redirects back to GET /api/auth/:provider/callback
//  3. the callback checks state, exchanges the code, reads userinfo, upserts the user
//     and stores the user ID in the session
//  4. GET or POST /api/auth/logout clears the session

// login starts the OAuth flow for a provider
func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()
	name := httputil.GetProvider(c)

	provider, err := s.providers.Get(name)
	if err != nil {
		s.handleServiceError(c, "start login", err)
		return
	}

	state, err := auth.NewState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate login state", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login"})
		return
	}
	verifier := auth.NewVerifier()

	session := getSession(c)
	auth.SetOAuthState(session, state, verifier, s.now())
	if !s.saveSession(c, session) {
		return
	}

	slog.DebugContext(ctx, "redirecting to identity provider", "provider", provider.Name)
	c.Redirect(http.StatusFound, provider.AuthCodeURL(state, verifier))
}

// callback completes the OAuth flow and logs the user in
func (s *Server) callback(c *gin.Context) {
	ctx := c.Request.Context()
	name := httputil.GetProvider(c)

	provider, err := s.providers.Get(name)
	if err != nil {
		s.handleServiceError(c, "complete login", err)
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		slog.WarnContext(ctx, "identity provider returned an error", "provider", name, "error", errParam)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Login was not completed",
			Details: errParam,
		})
		return
	}

	session := getSession(c)
	expectedState, verifier, ok := auth.TakeOAuthState(session, s.now())
	state := c.Query("state")
	if !ok || state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) != 1 {
		// the pending state is single use either way
		s.saveSession(c, session)
		if !c.Writer.Written() {
			s.handleServiceError(c, "complete login", domain.ErrOAuthStateMismatch)
		}
		return
	}

	code := c.Query("code")
	if code == "" {
		s.handleServiceError(c, "complete login", domain.WrapValidationError("code", errors.New("missing authorization code")))
		return
	}

	token, err := provider.Exchange(ctx, code, verifier)
	if err != nil {
		s.handleServiceError(c, "complete login", err)
		return
	}

	identity, err := provider.FetchProfile(ctx, token)
	if err != nil {
		s.handleServiceError(c, "complete login", err)
		return
	}

	user, err := s.userService.LoginWithIdentity(ctx, *identity)
	if err != nil {
		s.handleServiceError(c, "complete login", err)
		return
	}

	auth.SetUser(session, user.ID, provider.Name)
	if !s.saveSession(c, session) {
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// logout clears the session. Browsers following a link get redirected home,
// API clients posting get a JSON acknowledgement.
func (s *Server) logout(c *gin.Context) {
	session := getSession(c)
	auth.Clear(session)
	if !s.saveSession(c, session) {
		return
	}

	if c.Request.Method == http.MethodPost {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
