package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/houseping/internal/auth"
	"github.com/houseping/internal/config"
	"github.com/houseping/internal/db"
	"github.com/houseping/internal/http"
	"github.com/houseping/internal/logger"
	"github.com/houseping/internal/service"
	"github.com/houseping/internal/web"
)

const startupTimeout = 30 * time.Second

func main() {
	// Load .env file if it exists (optional, won't error if missing)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration; a missing DATABASE_URL stops here, before anything listens
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	appLogger := logger.InitLogger(cfg.Environment, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	database, err := db.Init(startupCtx, cfg.DatabaseURL, cfg.Database.MaxConns)
	cancel()
	if err != nil {
		appLogger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	googleClient, cshClient := auth.GetClients(cfg)
	for _, provider := range []*auth.Provider{googleClient, cshClient} {
		if !provider.Configured() {
			appLogger.Warn("identity provider not configured, login disabled", "provider", provider.Name)
		}
	}

	// Session keys live only as long as this process
	sessions, err := auth.NewSessionStore(auth.SessionOptions{
		Secure: cfg.Session.SecureCookie,
		MaxAge: cfg.Session.MaxAge,
	})
	if err != nil {
		appLogger.Error("failed to create session store", "error", err)
		os.Exit(1)
	}

	server := http.NewServer(cfg, http.Options{
		Database:  database,
		Users:     service.NewUserService(database, appLogger),
		Pings:     service.NewPingService(database, appLogger),
		Providers: auth.NewProviders(googleClient, cshClient),
		Sessions:  sessions,
		Assets:    web.Assets(),
	})

	appLogger.Info("configuration loaded",
		"address", cfg.Addr(),
		"redirect_base", cfg.RedirectBase(),
		"environment", cfg.Environment,
		"max_conns", cfg.Database.MaxConns,
	)

	if err := server.Run(ctx); err != nil {
		appLogger.Error("server error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server stopped")
}
