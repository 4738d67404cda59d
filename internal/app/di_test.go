package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/allisson/replydesk/internal/config"
	apperrors "github.com/allisson/replydesk/internal/errors"
)

// testConfig returns a configuration that exercises the full dependency
// graph without reaching any external system. The database driver is
// deliberately invalid so connection attempts fail fast.
func testConfig() *config.Config {
	return &config.Config{
		LogLevel:                 "error",
		ServerHost:               "localhost",
		ServerPort:               8080,
		DBDriver:                 "invalid_driver",
		DBConnectionString:       "",
		DBMaxOpenConnections:     10,
		DBMaxIdleConnections:     5,
		DBConnMaxLifetime:        time.Hour,
		DBConnectTimeout:         time.Second,
		PrefillSecret:            "test-secret",
		PrefillTTL:               30 * 24 * time.Hour,
		PublishEnabled:           true,
		PlatformBaseURL:          "https://platform.example.com",
		GenerationURL:            "https://generation.example.com/v1/chat/completions",
		GenerationMaxConcurrency: 3,
		NotifyTimeout:            5 * time.Second,
		OutboxInterval:           time.Second,
		OutboxBatchSize:          10,
		OutboxMaxRetries:         3,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "debug",
	}

	container := NewContainer(cfg)
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerDefaultLevel verifies that logger defaults to info level.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "invalid",
	}

	container := NewContainer(cfg)
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

// TestContainerInitializationErrors verifies that initialization errors are properly handled.
func TestContainerInitializationErrors(t *testing.T) {
	// Create a container with invalid database configuration
	cfg := &config.Config{
		LogLevel:           "error",
		DBDriver:           "invalid_driver",
		DBConnectionString: "",
	}

	container := NewContainer(cfg)

	// Attempting to get DB should return an error
	_, err := container.DB()
	if err == nil {
		t.Error("expected error when connecting with invalid config")
	}

	// Attempting to get DB again should return the same error
	_, err2 := container.DB()
	if err2 == nil {
		t.Error("expected error on second call to DB()")
	}
}

// TestContainerLazyInitialization verifies that components are only initialized when accessed.
func TestContainerLazyInitialization(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "info",
	}

	container := NewContainer(cfg)

	// At this point, no components should be initialized
	if container.logger != nil {
		t.Error("expected logger to be nil before first access")
	}

	// Access logger
	logger := container.Logger()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Now logger should be initialized
	if container.logger == nil {
		t.Error("expected logger to be initialized after access")
	}
}

// TestContainerShutdown verifies that the shutdown method can be called safely.
func TestContainerShutdown(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "info",
	}

	container := NewContainer(cfg)

	// Shutdown should not fail even if no components are initialized
	if err := container.Shutdown(context.TODO()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}

// TestContainerPrefillUseCaseDegradedWithoutDatabase verifies that an
// unreachable database yields a degraded prefill use case instead of an
// initialization error.
func TestContainerPrefillUseCaseDegradedWithoutDatabase(t *testing.T) {
	container := NewContainer(testConfig())

	useCase, err := container.PrefillUseCase()
	if err != nil {
		t.Fatalf("unexpected error getting prefill use case: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil prefill use case")
	}

	markErr := useCase.MarkUsed(context.TODO(), "some-token")
	if markErr == nil {
		t.Fatal("expected error from degraded prefill use case")
	}
	if !errors.Is(markErr, apperrors.ErrUnavailable) {
		t.Errorf("expected unavailability error, got: %v", markErr)
	}
}

// TestContainerNotificationUseCaseDegradedWithoutDatabase verifies that an
// unreachable database yields a direct-delivery notification use case.
func TestContainerNotificationUseCaseDegradedWithoutDatabase(t *testing.T) {
	container := NewContainer(testConfig())

	useCase, err := container.NotificationUseCase()
	if err != nil {
		t.Fatalf("unexpected error getting notification use case: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil notification use case")
	}

	// Without a webhook URL configured the event is dropped silently.
	if err := useCase.Enqueue(context.TODO(), "test.event", map[string]string{"k": "v"}); err != nil {
		t.Errorf("unexpected error enqueueing event: %v", err)
	}
}

// TestContainerHTTPServerDegradedWithoutDatabase verifies that the full HTTP
// server graph assembles even when the database is unreachable.
func TestContainerHTTPServerDegradedWithoutDatabase(t *testing.T) {
	container := NewContainer(testConfig())

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error getting http server: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil http server")
	}
	if server.GetHandler() == nil {
		t.Error("expected router to be set up")
	}

	if err := container.Shutdown(context.TODO()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}

// TestContainerHTTPServerSealedSecretWithoutKeeper verifies that a sealed
// secret without a configured keeper fails server initialization.
func TestContainerHTTPServerSealedSecretWithoutKeeper(t *testing.T) {
	cfg := testConfig()
	cfg.PrefillSecret = "sealed:bGlnaHQgd29yaw"

	container := NewContainer(cfg)

	if _, err := container.HTTPServer(); err == nil {
		t.Fatal("expected error resolving sealed secret without keeper")
	}
}

// TestContainerPasswordService verifies that the password service is a singleton.
func TestContainerPasswordService(t *testing.T) {
	container := NewContainer(testConfig())

	service1 := container.PasswordService()
	if service1 == nil {
		t.Fatal("expected non-nil password service")
	}

	service2 := container.PasswordService()
	if service1 != service2 {
		t.Error("expected same password service instance on multiple calls")
	}
}
