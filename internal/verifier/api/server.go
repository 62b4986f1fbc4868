package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/api/handlers"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/api/middleware"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
)

// Server represents the API server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
}

// Config holds the server configuration
type Config struct {
	Host           string
	Port           string
	RequestTimeout time.Duration
	DevMode        bool
}

// Dependencies holds the server dependencies
type Dependencies struct {
	Logger  logging.Logger
	Service handlers.VerificationService
}

// NewServer creates a new API server
func NewServer(cfg Config, deps Dependencies) *Server {
	if cfg.DevMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	srv := &Server{
		router: router,
		logger: deps.Logger,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Handler:           withCORS(router),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	srv.setupMiddleware(cfg)
	srv.setupRoutes(deps)

	return srv
}

// Handler returns the HTTP handler including CORS, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func withCORS(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(next)
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("Starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.RequestIDMiddleware(s.logger))
	s.router.Use(middleware.RecoveryMiddleware())
	s.router.Use(middleware.MetricsMiddleware())
	s.router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))
}

func (s *Server) setupRoutes(deps Dependencies) {
	handler := handlers.NewHandler(deps.Service)

	s.router.GET("/", handler.HealthCheck)
	s.router.GET("/status", handler.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/verify", handler.Verify)
		api.GET("/accounts", handler.Account)
	}
}
