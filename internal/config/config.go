package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 8080
	DefaultMaxConns = 5
)

// ErrMissingDatabaseURL is returned by Load when DATABASE_URL is not set
var ErrMissingDatabaseURL = errors.New("DATABASE_URL must be set")

// Config holds the application configuration
type Config struct {
	Host        string
	Port        int
	DatabaseURL string
	Database    DatabaseConfig
	BaseURL     string
	Environment string
	LogJSON     bool
	OAuth       OAuthConfig
	Session     SessionConfig
	CORS        CORSConfig
}

// DatabaseConfig holds connection pool settings
type DatabaseConfig struct {
	MaxConns int32
}

// OAuthConfig holds credentials for both identity providers
type OAuthConfig struct {
	Google       ClientCredentials
	CSH          ClientCredentials
	CSHIssuerURL string
}

// ClientCredentials is a registered OAuth client
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// SessionConfig holds cookie session settings
type SessionConfig struct {
	SecureCookie bool
	MaxAge       time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// envVars is the raw environment, before defaults that depend on other values are applied
type envVars struct {
	Host               string        `env:"HOST" envDefault:"127.0.0.1"`
	Port               string        `env:"PORT"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	DatabaseMaxConns   int32         `env:"DATABASE_MAX_CONNS" envDefault:"5"`
	BaseURL            string        `env:"BASE_URL"`
	Environment        string        `env:"APP_ENV" envDefault:"production"`
	LogJSON            string        `env:"LOG_JSON"`
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
	CSHClientID        string        `env:"CSH_CLIENT_ID"`
	CSHClientSecret    string        `env:"CSH_CLIENT_SECRET"`
	CSHIssuerURL       string        `env:"CSH_ISSUER_URL" envDefault:"https://sso.csh.rit.edu/auth/realms/csh"`
	SecureCookie       bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
	SessionMaxAge      time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`
	CORSOrigins        string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:8080"`
}

// Load loads configuration from environment variables with defaults.
// DATABASE_URL is the only required value.
func Load() (*Config, error) {
	var raw envVars
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	databaseURL := strings.TrimSpace(raw.DatabaseURL)
	if databaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	host := strings.TrimSpace(raw.Host)
	if host == "" {
		host = DefaultHost
	}

	maxConns := raw.DatabaseMaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}

	return &Config{
		Host:        host,
		Port:        parsePort(raw.Port),
		DatabaseURL: databaseURL,
		Database: DatabaseConfig{
			MaxConns: maxConns,
		},
		BaseURL:     strings.TrimRight(strings.TrimSpace(raw.BaseURL), "/"),
		Environment: raw.Environment,
		LogJSON:     parseLogJSON(raw.LogJSON, raw.Environment),
		OAuth: OAuthConfig{
			Google: ClientCredentials{
				ClientID:     raw.GoogleClientID,
				ClientSecret: raw.GoogleClientSecret,
			},
			CSH: ClientCredentials{
				ClientID:     raw.CSHClientID,
				ClientSecret: raw.CSHClientSecret,
			},
			CSHIssuerURL: strings.TrimRight(raw.CSHIssuerURL, "/"),
		},
		Session: SessionConfig{
			SecureCookie: raw.SecureCookie,
			MaxAge:       raw.SessionMaxAge,
		},
		CORS: CORSConfig{
			AllowedOrigins: parseCommaSeparatedList(raw.CORSOrigins),
		},
	}, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// RedirectBase returns the externally visible origin used to build OAuth redirect URIs
func (c *Config) RedirectBase() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "http://" + c.Addr()
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// parsePort never fails: anything that is not a usable TCP port yields DefaultPort
func parsePort(s string) int {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return port
}

// parseLogJSON defaults to JSON everywhere except development
func parseLogJSON(value, environment string) bool {
	if value != "" {
		return value == "true"
	}
	return environment != "development"
}

// parseCommaSeparatedList splits a comma-separated string into a slice
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return []string{}
	}

	items := strings.Split(s, ",")
	result := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}

	return result
}
