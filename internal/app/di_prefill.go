package app

import (
	"fmt"
	"log/slog"

	prefillHTTP "github.com/allisson/replydesk/internal/prefill/http"
	prefillRepository "github.com/allisson/replydesk/internal/prefill/repository"
	prefillService "github.com/allisson/replydesk/internal/prefill/service"
	prefillUsecase "github.com/allisson/replydesk/internal/prefill/usecase"
)

// PrefillRepository returns the prefill repository based on database driver.
func (c *Container) PrefillRepository() (prefillUsecase.PrefillRepository, error) {
	var err error
	c.prefillRepoInit.Do(func() {
		c.prefillRepo, err = c.initPrefillRepository()
		if err != nil {
			c.initErrors["prefillRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["prefillRepo"]; exists {
		return nil, storedErr
	}
	return c.prefillRepo, nil
}

// PrefillUseCase returns the prefill use case. While the database is
// unreachable it returns a degraded implementation that answers every
// operation with an unavailability error instead of failing initialization.
func (c *Container) PrefillUseCase() (prefillUsecase.PrefillUseCase, error) {
	var err error
	c.prefillUseCaseInit.Do(func() {
		c.prefillUseCase, err = c.initPrefillUseCase()
		if err != nil {
			c.initErrors["prefillUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["prefillUseCase"]; exists {
		return nil, storedErr
	}
	return c.prefillUseCase, nil
}

// PrefillHandler returns the HTTP handler for prefill token operations.
func (c *Container) PrefillHandler() (*prefillHTTP.PrefillHandler, error) {
	var err error
	c.prefillHandlerInit.Do(func() {
		c.prefillHandler, err = c.initPrefillHandler()
		if err != nil {
			c.initErrors["prefillHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["prefillHandler"]; exists {
		return nil, storedErr
	}
	return c.prefillHandler, nil
}

// initPrefillRepository creates the prefill repository based on the database driver.
func (c *Container) initPrefillRepository() (prefillUsecase.PrefillRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for prefill repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgresql":
		return prefillRepository.NewPostgreSQLPrefillRepository(db), nil
	case "mysql":
		return prefillRepository.NewMySQLPrefillRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPrefillUseCase creates the prefill use case with all its dependencies.
func (c *Container) initPrefillUseCase() (prefillUsecase.PrefillUseCase, error) {
	logger := c.Logger()

	prefillRepo, err := c.PrefillRepository()
	if err != nil {
		logger.Warn("prefill store unavailable; token operations answer 503",
			slog.Any("error", err),
		)
		return newUnavailablePrefillUseCase(), nil
	}

	tokenService := prefillService.NewTokenService()

	baseUseCase := prefillUsecase.NewPrefillUseCase(
		prefillRepo,
		tokenService,
		c.config.PrefillTTL,
		logger,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for prefill use case: %w", err)
		}
		return prefillUsecase.NewPrefillUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPrefillHandler creates the prefill HTTP handler with all its dependencies.
func (c *Container) initPrefillHandler() (*prefillHTTP.PrefillHandler, error) {
	prefillUseCase, err := c.PrefillUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get prefill use case for prefill handler: %w", err)
	}

	return prefillHTTP.NewPrefillHandler(prefillUseCase, c.Logger()), nil
}
