package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/api/graphql"
	"github.com/ispcore/ipam/internal/api/middleware"
	"github.com/ispcore/ipam/internal/api/rest"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/migration"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
	RateLimit    middleware.RateLimitConfig
	Auth         middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config       Config
	engine       ipam.Engine
	orchestrator migration.Orchestrator
	rateLimiter  adapter.RedisRateLimiter
	httpServer   *http.Server
}

// New creates a new API server. A nil rate limiter keeps request budgets in process.
func New(cfg Config, engine ipam.Engine, orchestrator migration.Orchestrator, rateLimiter adapter.RedisRateLimiter) *Server {
	return &Server{
		config:       cfg,
		engine:       engine,
		orchestrator: orchestrator,
		rateLimiter:  rateLimiter,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() (*gin.Engine, error) {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	auth, err := middleware.NewAuthenticator(s.config.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.CORSOrigins))
	router.Use(middleware.RateLimit(s.config.RateLimit, s.rateLimiter))

	rest.SetupRoutes(router, rest.NewHandler(s.engine, s.orchestrator), auth)
	graphql.SetupRoutes(router, graphql.NewHandler(s.engine, s.orchestrator, auth))

	return router, nil
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
