// Package http provides the API server, router assembly and shared middleware.
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
	otelmetric "go.opentelemetry.io/otel/metric"

	draftingHTTP "github.com/allisson/replydesk/internal/drafting/http"
	apperrors "github.com/allisson/replydesk/internal/errors"
	"github.com/allisson/replydesk/internal/metrics"
	prefillHTTP "github.com/allisson/replydesk/internal/prefill/http"
	publishHTTP "github.com/allisson/replydesk/internal/publish/http"
	publishService "github.com/allisson/replydesk/internal/publish/service"
)

// dbPingTimeout bounds the database ping performed by the readiness check.
const dbPingTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server. The database handle may be nil when the
// service runs degraded; readiness then reports 503 until a restart.
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

// RouterConfig carries the handlers and settings mounted by SetupRouter.
type RouterConfig struct {
	PrefillHandler *prefillHTTP.PrefillHandler
	DraftHandler   *draftingHTTP.DraftHandler
	PublishHandler *publishHTTP.PublishHandler

	// PrefillSecret gates prefill creation and the debug endpoint.
	PrefillSecret string

	// PublishBasicUser and PublishBasicPasswordHash enable basic auth on the
	// publish endpoint when both are set.
	PublishBasicUser         string
	PublishBasicPasswordHash string
	PasswordService          publishService.PasswordService

	CORSEnabled      bool
	CORSAllowOrigins string

	// MeterProvider enables per-request metrics when non-nil.
	MeterProvider    otelmetric.MeterProvider
	MetricsNamespace string
}

// SetupRouter assembles the Gin router: recovery, request ids, logging,
// optional metrics and CORS, then the API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	// CORS is registered router-wide so preflight requests are answered even
	// for unmatched routes; only the /api group is browser-facing.
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")

	secretAuth := prefillHTTP.SecretAuthMiddleware(cfg.PrefillSecret, s.logger)
	api.POST("/prefill", secretAuth, cfg.PrefillHandler.CreateHandler)
	api.GET("/prefill", cfg.PrefillHandler.ResolveHandler)
	api.GET("/debug/prefill", secretAuth, cfg.PrefillHandler.DebugHandler)

	api.POST("/draft", cfg.DraftHandler.DraftHandler)

	publishChain := make([]gin.HandlerFunc, 0, 2)
	if cfg.PublishBasicUser != "" && cfg.PublishBasicPasswordHash != "" {
		publishChain = append(publishChain, publishHTTP.BasicAuthMiddleware(
			cfg.PublishBasicUser,
			cfg.PublishBasicPasswordHash,
			cfg.PasswordService,
			s.logger,
		))
	}
	publishChain = append(publishChain, cfg.PublishHandler.PublishHandler)
	api.POST("/publish", publishChain...)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the service can do useful work. The
// database is the only hard dependency; while it is unreachable the service
// runs degraded and readiness answers 503.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dbPingTimeout)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness database ping failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must have been called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return apperrors.Wrap(apperrors.ErrConfiguration, "http server router is not set up")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return apperrors.Wrap(err, "failed to start http server")
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
