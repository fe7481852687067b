package constants

import "time"

// Identity provider names, also used as the :provider path segment
const (
	ProviderGoogle = "google"
	ProviderCSH    = "csh"
)

// Session cookie and value keys
const (
	SessionName = "houseping_session"

	SessionKeyUserID       = "user_id"
	SessionKeyProvider     = "provider"
	SessionKeyOAuthState   = "oauth_state"
	SessionKeyOAuthVerify  = "oauth_verifier"
	SessionKeyOAuthStarted = "oauth_started_at"
)

// OAuthStateTTL bounds how long a login may take between redirect and callback
const OAuthStateTTL = 10 * time.Minute

// Health status values
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

// Static bundle documents
const (
	IndexDocument      = "index.html"
	DefaultContentType = "application/octet-stream"
	NotFoundBody       = "File not found"
)
