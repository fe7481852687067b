package http

import (
	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/apipaths"
)

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.engine.GET(apipaths.Metrics, s.metrics.handler())

	api := s.engine.Group(apipaths.Prefix)
	{
		// Heartbeat and health check (no auth required)
		api.GET("/ping", s.ping)
		api.GET("/health", s.health)

		s.setupAuthRoutes(api)

		// Everything below needs a logged-in session
		protected := api.Group("")
		protected.Use(s.requireUser())
		{
			protected.GET("/me", s.getCurrentUser)
			s.setupPingRoutes(protected)
		}
	}

	// Serve the embedded frontend
	for _, path := range []string{apipaths.Index, apipaths.About} {
		s.engine.GET(path, s.serveIndex)
		s.engine.HEAD(path, s.serveIndex)
	}
	s.engine.NoRoute(s.serveStatic)
}

func (s *Server) setupAuthRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.GET("/logout", s.logout)
		authGroup.POST("/logout", s.logout)
		authGroup.GET("/:provider/login", s.login)
		authGroup.GET("/:provider/callback", s.callback)
	}
}

func (s *Server) setupPingRoutes(api *gin.RouterGroup) {
	pings := api.Group("/pings")
	{
		pings.GET("", s.listPings)
		pings.POST("", s.createPing)
		pings.GET("/summary", s.getPingSummary)
		pings.GET("/:id", s.getPing)
		pings.DELETE("/:id", s.deletePing)
	}
}
