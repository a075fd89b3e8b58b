// Package http provides the HTTP server, routing and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/custody/internal/config"
	custodyHTTP "github.com/allisson/custody/internal/custody/http"
	evidenceHTTP "github.com/allisson/custody/internal/evidence/http"
	"github.com/allisson/custody/internal/metrics"
)

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	stop   context.CancelFunc
}

// NewServer creates a new HTTP server. db backs the readiness probe.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and all API routes.
func (s *Server) SetupRouter(
	cfg *config.Config,
	evidenceHandler *evidenceHTTP.EvidenceHandler,
	custodyHandler *custodyHTTP.CustodyHandler,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	evidence := v1.Group("/evidence")
	{
		evidence.POST("", evidenceHandler.RegisterHandler)
		evidence.GET("", evidenceHandler.ListHandler)
		evidence.GET("/lookup", evidenceHandler.LookupHandler)
		evidence.GET("/:id", evidenceHandler.GetHandler)
		evidence.DELETE("/:id", evidenceHandler.RemoveHandler)

		evidence.POST("/:id/custody", custodyHandler.AppendHandler)
		evidence.GET("/:id/custody", custodyHandler.HistoryHandler)
		evidence.GET("/:id/custody/verify", custodyHandler.VerifyChainHandler)
		evidence.POST("/:id/integrity", custodyHandler.VerifyIntegrityHandler)
	}

	v1.GET("/evidence-deletions", evidenceHandler.ListDeletionsHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.stop != nil {
		s.stop()
	}
	return s.server.Shutdown(ctx)
}
