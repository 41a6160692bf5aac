// Package server exposes the card pipeline as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/service"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:7878"

const shutdownTimeout = 10 * time.Second

// SettingsStore loads and persists view settings.
type SettingsStore interface {
	Load() (models.ViewSettings, error)
	Save(models.ViewSettings) error
}

// Config holds server configuration
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP server
type Server struct {
	cfg        Config
	router     *gin.Engine
	handlers   *Handlers
	logger     logrus.FieldLogger
	httpServer *http.Server
}

// New creates a new server instance
func New(cfg Config, svc *service.Service, settings SettingsStore, logger logrus.FieldLogger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = logrus.New()
	}

	s := &Server{
		cfg:      cfg,
		router:   gin.New(),
		handlers: NewHandlers(svc, settings, logger),
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(LoggerMiddleware(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/cards", s.handlers.ListCards)
		api.GET("/search", s.handlers.Search)
		api.POST("/notes", s.handlers.CreateNote)
		api.GET("/settings", s.handlers.GetSettings)
		api.PUT("/settings", s.handlers.UpdateSettings)
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("Server forced to shutdown")
		}
	}()

	s.logger.WithField("addr", s.cfg.Addr).Info("Starting card server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// Router returns the Gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
