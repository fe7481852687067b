package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

var configKeys = []string{
	"HOST",
	"PORT",
	"DATABASE_URL",
	"DATABASE_MAX_CONNS",
	"BASE_URL",
	"APP_ENV",
	"LOG_JSON",
	"GOOGLE_CLIENT_ID",
	"GOOGLE_CLIENT_SECRET",
	"CSH_CLIENT_ID",
	"CSH_CLIENT_SECRET",
	"CSH_ISSUER_URL",
	"SESSION_SECURE_COOKIE",
	"SESSION_MAX_AGE",
	"CORS_ALLOWED_ORIGINS",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/houseping")

	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Host != "127.0.0.1" {
		t.Errorf("Expected Host to be 127.0.0.1, got %s", config.Host)
	}

	if config.Port != 8080 {
		t.Errorf("Expected Port to be 8080, got %d", config.Port)
	}

	if config.Addr() != "127.0.0.1:8080" {
		t.Errorf("Expected Addr to be 127.0.0.1:8080, got %s", config.Addr())
	}

	if config.Database.MaxConns != 5 {
		t.Errorf("Expected MaxConns to be 5, got %d", config.Database.MaxConns)
	}

	if config.RedirectBase() != "http://127.0.0.1:8080" {
		t.Errorf("Expected RedirectBase to be http://127.0.0.1:8080, got %s", config.RedirectBase())
	}

	if config.Environment != "production" {
		t.Errorf("Expected Environment to be production, got %s", config.Environment)
	}

	if !config.LogJSON {
		t.Errorf("Expected LogJSON to be true in production")
	}

	if config.OAuth.CSHIssuerURL != "https://sso.csh.rit.edu/auth/realms/csh" {
		t.Errorf("Unexpected CSH issuer: %s", config.OAuth.CSHIssuerURL)
	}

	if config.Session.SecureCookie {
		t.Errorf("Expected SecureCookie to be false")
	}

	if config.Session.MaxAge != 7*24*time.Hour {
		t.Errorf("Expected session MaxAge to be 168h, got %s", config.Session.MaxAge)
	}

	expectedOrigins := []string{"http://localhost:5173", "http://localhost:8080"}
	if len(config.CORS.AllowedOrigins) != len(expectedOrigins) {
		t.Fatalf("Expected %d CORS origins, got %d", len(expectedOrigins), len(config.CORS.AllowedOrigins))
	}
	for i, origin := range expectedOrigins {
		if config.CORS.AllowedOrigins[i] != origin {
			t.Errorf("Expected CORS origin %s at index %d, got %s", origin, i, config.CORS.AllowedOrigins[i])
		}
	}
}

func TestLoadWithCustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://db.internal/houseping")
	t.Setenv("DATABASE_MAX_CONNS", "12")
	t.Setenv("BASE_URL", "https://pings.example.com/")
	t.Setenv("APP_ENV", "development")
	t.Setenv("GOOGLE_CLIENT_ID", "google-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "google-secret")
	t.Setenv("CSH_CLIENT_ID", "csh-id")
	t.Setenv("CSH_CLIENT_SECRET", "csh-secret")
	t.Setenv("CSH_ISSUER_URL", "https://sso.example.com/realms/test/")
	t.Setenv("SESSION_SECURE_COOKIE", "true")
	t.Setenv("SESSION_MAX_AGE", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com, https://app.example.com")

	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Addr() != "0.0.0.0:9000" {
		t.Errorf("Expected Addr to be 0.0.0.0:9000, got %s", config.Addr())
	}

	if config.Database.MaxConns != 12 {
		t.Errorf("Expected MaxConns to be 12, got %d", config.Database.MaxConns)
	}

	if config.RedirectBase() != "https://pings.example.com" {
		t.Errorf("Expected RedirectBase to strip trailing slash, got %s", config.RedirectBase())
	}

	if !config.IsDevelopment() {
		t.Errorf("Expected development environment")
	}

	if config.LogJSON {
		t.Errorf("Expected text logging in development")
	}

	if config.OAuth.Google.ClientID != "google-id" || config.OAuth.Google.ClientSecret != "google-secret" {
		t.Errorf("Unexpected Google credentials: %+v", config.OAuth.Google)
	}

	if config.OAuth.CSH.ClientID != "csh-id" || config.OAuth.CSH.ClientSecret != "csh-secret" {
		t.Errorf("Unexpected CSH credentials: %+v", config.OAuth.CSH)
	}

	if config.OAuth.CSHIssuerURL != "https://sso.example.com/realms/test" {
		t.Errorf("Unexpected CSH issuer: %s", config.OAuth.CSHIssuerURL)
	}

	if !config.Session.SecureCookie {
		t.Errorf("Expected SecureCookie to be true")
	}

	if config.Session.MaxAge != time.Hour {
		t.Errorf("Expected session MaxAge to be 1h, got %s", config.Session.MaxAge)
	}

	if len(config.CORS.AllowedOrigins) != 2 || config.CORS.AllowedOrigins[1] != "https://app.example.com" {
		t.Errorf("Unexpected CORS origins: %v", config.CORS.AllowedOrigins)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	config, err := Load()
	if !errors.Is(err, ErrMissingDatabaseURL) {
		t.Fatalf("Expected ErrMissingDatabaseURL, got %v", err)
	}
	if config != nil {
		t.Errorf("Expected nil config when DATABASE_URL is unset")
	}

	t.Setenv("DATABASE_URL", "   ")
	if _, err := Load(); !errors.Is(err, ErrMissingDatabaseURL) {
		t.Errorf("Expected blank DATABASE_URL to be rejected, got %v", err)
	}
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/houseping")
	t.Setenv("PORT", "not-a-port")

	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Port != DefaultPort {
		t.Errorf("Expected fallback port %d, got %d", DefaultPort, config.Port)
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 8080},
		{"3000", 3000},
		{" 3001 ", 3001},
		{"abc", 8080},
		{"80x", 8080},
		{"0", 8080},
		{"-1", 8080},
		{"65535", 65535},
		{"65536", 8080},
	}

	for _, tt := range tests {
		if got := parsePort(tt.input); got != tt.want {
			t.Errorf("parsePort(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"normal list", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace", "a, b , c ", []string{"a", "b", "c"}},
		{"empty string", "", []string{}},
		{"empty items", "a,,c", []string{"a", "c"}},
		{"only separators", ",,", []string{}},
		{"single item", "single", []string{"single"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := parseCommaSeparatedList(tt.input)
			if len(list) != len(tt.want) {
				t.Fatalf("Expected %d items, got %d", len(tt.want), len(list))
			}
			for i, item := range tt.want {
				if list[i] != item {
					t.Errorf("Expected item %s at index %d, got %s", item, i, list[i])
				}
			}
		})
	}
}
