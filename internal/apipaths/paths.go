package apipaths

import "strings"

// Single API surface paths. Used by routes, the cache and static middleware, and tests.

const (
	Prefix       = "/api"
	Ping         = "/api/ping"
	Health       = "/api/health"
	Me           = "/api/me"
	Pings        = "/api/pings"
	PingsSummary = "/api/pings/summary"
	AuthPrefix   = "/api/auth"
	Logout       = "/api/auth/logout"
	Metrics      = "/metrics"
	Index        = "/"
	About        = "/about"
)

func PingByID(pingID string) string { return "/api/pings/" + pingID }

func Login(provider string) string { return "/api/auth/" + provider + "/login" }

func Callback(provider string) string { return "/api/auth/" + provider + "/callback" }

// IsAPI reports whether a request path belongs to the /api scope
func IsAPI(path string) bool {
	return path == Prefix || strings.HasPrefix(path, Prefix+"/")
}
