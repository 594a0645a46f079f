package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/handlers"
	"github.com/sirchsolutions/sirchweb/internal/api/middleware"
	"github.com/sirchsolutions/sirchweb/internal/config"
	"github.com/sirchsolutions/sirchweb/internal/logging"
	"github.com/sirchsolutions/sirchweb/internal/server/routes"
	"github.com/sirchsolutions/sirchweb/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	logger     *logging.Logger
	httpServer *http.Server
	email      *service.EmailService
}

// NewServer creates a new server instance. provider overrides the email
// backend built from cfg when non-nil.
func NewServer(cfg *config.Config, logger *logging.Logger, provider service.Provider) *Server {
	// Set release mode for production
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	email := service.NewEmailService(cfg.Email)
	if provider != nil {
		email = service.NewEmailServiceWithProvider(provider)
	}

	return &Server{
		router: gin.New(),
		cfg:    cfg,
		logger: logger,
		email:  email,
	}
}

// Init wires services, handlers and routes
func (s *Server) Init() error {
	if !s.email.Configured() {
		s.logger.Warn("RESEND_API_KEY is not set; contact submissions will be answered with 503")
	}

	contactService := service.NewContactService(s.email, s.cfg.Email)
	recaptchaService := service.NewRecaptchaService(s.cfg.RecaptchaSecretKey, s.cfg.RecaptchaMinScore)

	h := &routes.Handlers{
		Health:      handlers.NewHealthHandler(contactService),
		Contact:     handlers.NewContactHandler(contactService, recaptchaService, s.logger),
		EarlyAccess: handlers.NewEarlyAccessHandler(contactService, s.logger),
	}

	m := &routes.Middleware{
		FormRateLimit: middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   s.cfg.ContactRateRPS,
			Burst: s.cfg.ContactRateBurst,
		}),
		MaxBodySize: middleware.DefaultMaxBodySize,
	}

	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger)
	routes.Setup(s.router, h, m, s.logger)

	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Starting HTTP server on port %s", s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones,
// including their email dispatches, until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
