package http

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/apipaths"
	"github.com/houseping/internal/auth"
	"github.com/houseping/internal/config"
	"github.com/houseping/internal/domain"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options holds the collaborators built at startup and shared by every request
type Options struct {
	Database  HealthChecker
	Users     domain.UserService
	Pings     domain.PingService
	Providers auth.Providers
	Sessions  *auth.SessionStore
	Assets    fs.FS
}

// Server wraps the HTTP server
type Server struct {
	config      *config.Config
	database    HealthChecker
	userService domain.UserService
	pingService domain.PingService
	providers   auth.Providers
	sessions    *auth.SessionStore
	assets      fs.FS
	metrics     *metrics
	engine      *gin.Engine
	now         func() time.Time
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, opts Options) *Server {
	// Set Gin mode based on environment; tests pick their own
	if gin.Mode() != gin.TestMode {
		if cfg.IsDevelopment() {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}

	engine := gin.New()
	engine.MaxMultipartMemory = maxBodySize
	// /about/ is not /about; unmatched paths fall through to the static lookup
	engine.RedirectTrailingSlash = false

	server := &Server{
		config:      cfg,
		database:    opts.Database,
		userService: opts.Users,
		pingService: opts.Pings,
		providers:   opts.Providers,
		sessions:    opts.Sessions,
		assets:      opts.Assets,
		metrics:     newMetrics(opts.Database),
		engine:      engine,
		now:         time.Now,
	}

	// Middleware - order matters
	engine.Use(gin.Recovery())
	engine.Use(server.metrics.middleware())
	engine.Use(loggerMiddleware())
	engine.Use(securityHeadersMiddleware())
	engine.Use(corsMiddleware(cfg))
	engine.Use(cacheControlMiddleware())
	engine.Use(jsonBodyLimitMiddleware(maxBodySize))
	engine.Use(server.sessionMiddleware())

	server.setupRoutes()

	return server
}

const (
	maxBodySize     = 64 << 10          // 64KB max request body
	readTimeout     = 30 * time.Second  // 30s for reading request
	writeTimeout    = 120 * time.Second // 2 minutes
	idleTimeout     = 120 * time.Second // 2 minutes idle
	shutdownTimeout = 30 * time.Second
	healthTimeout   = 2 * time.Second
)

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Addr()

	// Configure server with timeouts
	server := &http.Server{
		Addr:           addr,
		Handler:        s.engine,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", "http://"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// securityHeadersMiddleware adds security-related HTTP headers
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		// Prevent clickjacking
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// HSTS (only if using HTTPS)
		if c.Request.TLS != nil {
			c.Writer.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// corsMiddleware adds CORS headers with configurable origin
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// cacheControlMiddleware sets cache headers by path
func cacheControlMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if apipaths.IsAPI(path) {
			// API endpoints - no caching for dynamic data
			c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Writer.Header().Set("Pragma", "no-cache")
			c.Writer.Header().Set("Expires", "0")
		} else if strings.HasPrefix(path, "/assets/") {
			// Bundler output is content-hashed
			c.Writer.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}

		c.Next()
	}
}

// jsonBodyLimitMiddleware limits the size of JSON request bodies
func jsonBodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodDelete && c.Request.Method != http.MethodOptions {
			contentType := c.GetHeader("Content-Type")
			if strings.Contains(contentType, "application/json") {
				if c.Request.ContentLength > maxBytes {
					c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
						Error: "Request body too large",
					})
					return
				}
				c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
			}
		}
		c.Next()
	}
}

// loggerMiddleware logs HTTP requests once they complete
func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
		)
	}
}
