package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sirchsolutions/sirchweb/internal/api/middleware"
	"github.com/sirchsolutions/sirchweb/internal/config"
	"github.com/sirchsolutions/sirchweb/internal/logging"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, logger *logging.Logger) {
	// Health check endpoint
	SetupHealthRoutes(router, h.Health)

	api := router.Group("/api")

	// Contact and early access routes (public)
	SetupContactRoutes(api, h, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsProduction()))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
}

