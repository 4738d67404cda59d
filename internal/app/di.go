// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/replydesk/internal/config"
	"github.com/allisson/replydesk/internal/database"
	draftingHTTP "github.com/allisson/replydesk/internal/drafting/http"
	draftingService "github.com/allisson/replydesk/internal/drafting/service"
	draftingUsecase "github.com/allisson/replydesk/internal/drafting/usecase"
	"github.com/allisson/replydesk/internal/http"
	"github.com/allisson/replydesk/internal/metrics"
	notificationService "github.com/allisson/replydesk/internal/notification/service"
	notificationUsecase "github.com/allisson/replydesk/internal/notification/usecase"
	platformService "github.com/allisson/replydesk/internal/platform/service"
	prefillHTTP "github.com/allisson/replydesk/internal/prefill/http"
	prefillUsecase "github.com/allisson/replydesk/internal/prefill/usecase"
	publishHTTP "github.com/allisson/replydesk/internal/publish/http"
	publishService "github.com/allisson/replydesk/internal/publish/service"
	publishUsecase "github.com/allisson/replydesk/internal/publish/usecase"
	"github.com/allisson/replydesk/internal/sealed"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger         *slog.Logger
	db             *sql.DB
	txManager      database.TxManager
	sealedResolver sealed.Resolver

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Prefill context
	prefillRepo    prefillUsecase.PrefillRepository
	prefillUseCase prefillUsecase.PrefillUseCase
	prefillHandler *prefillHTTP.PrefillHandler

	// Platform context
	credentialCache platformService.CredentialCache
	reviewClient    platformService.ReviewClient

	// Publish context
	passwordService publishService.PasswordService
	publishUseCase  publishUsecase.PublishUseCase
	publishHandler  *publishHTTP.PublishHandler

	// Drafting context
	promptBuilder    draftingService.PromptBuilder
	generationClient draftingService.GenerationClient
	draftUseCase     draftingUsecase.DraftUseCase
	draftHandler     *draftingHTTP.DraftHandler

	// Notification context
	webhookSender       notificationService.WebhookSender
	webhookEventRepo    notificationUsecase.WebhookEventRepository
	notificationUseCase notificationUsecase.NotificationUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	txManagerInit           sync.Once
	sealedResolverInit      sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	prefillRepoInit         sync.Once
	prefillUseCaseInit      sync.Once
	prefillHandlerInit      sync.Once
	credentialCacheInit     sync.Once
	reviewClientInit        sync.Once
	passwordServiceInit     sync.Once
	publishUseCaseInit      sync.Once
	publishHandlerInit      sync.Once
	promptBuilderInit       sync.Once
	generationClientInit    sync.Once
	draftUseCaseInit        sync.Once
	draftHandlerInit        sync.Once
	webhookSenderInit       sync.Once
	webhookEventRepoInit    sync.Once
	notificationUseCaseInit sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// SealedResolver returns the resolver for sealed configuration values.
func (c *Container) SealedResolver() (sealed.Resolver, error) {
	var err error
	c.sealedResolverInit.Do(func() {
		c.sealedResolver, err = c.initSealedResolver()
		if err != nil {
			c.initErrors["sealedResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sealedResolver"]; exists {
		return nil, storedErr
	}
	return c.sealedResolver, nil
}

// MetricsProvider returns the metrics provider instance.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close sealed resolver if initialized
	if c.sealedResolver != nil {
		if err := c.sealedResolver.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("sealed resolver close: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(context.Background(), database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		ConnectTimeout:     c.config.DBConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initSealedResolver creates the sealed value resolver from the keeper URL.
func (c *Container) initSealedResolver() (sealed.Resolver, error) {
	resolver, err := sealed.NewResolver(context.Background(), c.config.SealedKeeperURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealed resolver: %w", err)
	}
	return resolver, nil
}

// resolveSecret unseals a possibly sealed configuration value. Plain values
// pass through without touching the keeper.
func (c *Container) resolveSecret(name, value string) (string, error) {
	if value == "" || !sealed.IsSealed(value) {
		return value, nil
	}

	resolver, err := c.SealedResolver()
	if err != nil {
		return "", fmt.Errorf("failed to get sealed resolver for %s: %w", name, err)
	}

	plaintext, err := resolver.Resolve(context.Background(), value)
	if err != nil {
		return "", fmt.Errorf("failed to resolve sealed %s: %w", name, err)
	}

	return plaintext, nil
}

// initMetricsProvider creates the metrics provider.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies. A failed
// database connection downgrades the server instead of failing it: readiness
// reports 503 and the token store answers 503 while drafting keeps working.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		logger.Warn("database unavailable; http server starts degraded", slog.Any("error", err))
		db = nil
	}

	prefillHandler, err := c.PrefillHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get prefill handler for http server: %w", err)
	}

	draftHandler, err := c.DraftHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft handler for http server: %w", err)
	}

	publishHandler, err := c.PublishHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get publish handler for http server: %w", err)
	}

	prefillSecret, err := c.resolveSecret("PREFILL_SECRET", c.config.PrefillSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prefill secret for http server: %w", err)
	}

	routerConfig := http.RouterConfig{
		PrefillHandler:           prefillHandler,
		DraftHandler:             draftHandler,
		PublishHandler:           publishHandler,
		PrefillSecret:            prefillSecret,
		PublishBasicUser:         c.config.PublishBasicUser,
		PublishBasicPasswordHash: c.config.PublishBasicPasswordHash,
		CORSEnabled:              c.config.CORSEnabled,
		CORSAllowOrigins:         c.config.CORSAllowOrigins,
	}

	if routerConfig.PublishBasicUser != "" && routerConfig.PublishBasicPasswordHash != "" {
		routerConfig.PasswordService = c.PasswordService()
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		routerConfig.MeterProvider = provider.MeterProvider()
		routerConfig.MetricsNamespace = c.config.MetricsNamespace
	}

	server := http.NewServer(
		db,
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
	)
	server.SetupRouter(routerConfig)

	return server, nil
}

// initMetricsServer creates the metrics HTTP server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		provider,
	), nil
}
