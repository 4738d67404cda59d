package app

import (
	"fmt"

	publishHTTP "github.com/allisson/replydesk/internal/publish/http"
	publishService "github.com/allisson/replydesk/internal/publish/service"
	publishUsecase "github.com/allisson/replydesk/internal/publish/usecase"
)

// PasswordService returns the Argon2id password service for publish basic auth.
func (c *Container) PasswordService() publishService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = publishService.NewPasswordService()
	})
	return c.passwordService
}

// PublishUseCase returns the publish use case.
func (c *Container) PublishUseCase() (publishUsecase.PublishUseCase, error) {
	var err error
	c.publishUseCaseInit.Do(func() {
		c.publishUseCase, err = c.initPublishUseCase()
		if err != nil {
			c.initErrors["publishUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publishUseCase"]; exists {
		return nil, storedErr
	}
	return c.publishUseCase, nil
}

// PublishHandler returns the HTTP handler for publishing replies.
func (c *Container) PublishHandler() (*publishHTTP.PublishHandler, error) {
	var err error
	c.publishHandlerInit.Do(func() {
		c.publishHandler, err = c.initPublishHandler()
		if err != nil {
			c.initErrors["publishHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publishHandler"]; exists {
		return nil, storedErr
	}
	return c.publishHandler, nil
}

// initPublishUseCase creates the publish use case with all its dependencies.
// The prefill use case stands in for the token store; while the database is
// unreachable it reports unavailability, which keeps publishing answering 503
// instead of failing at startup.
func (c *Container) initPublishUseCase() (publishUsecase.PublishUseCase, error) {
	prefillStore, err := c.PrefillUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get prefill use case for publish use case: %w", err)
	}

	reviewClient, err := c.ReviewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get review client for publish use case: %w", err)
	}

	baseUseCase := publishUsecase.NewPublishUseCase(
		prefillStore,
		reviewClient,
		c.config.PublishDryRun,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for publish use case: %w", err)
		}
		return publishUsecase.NewPublishUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPublishHandler creates the publish HTTP handler with all its dependencies.
func (c *Container) initPublishHandler() (*publishHTTP.PublishHandler, error) {
	publishUseCase, err := c.PublishUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get publish use case for publish handler: %w", err)
	}

	return publishHTTP.NewPublishHandler(
		publishUseCase,
		c.config.PublishEnabled,
		c.Logger(),
	), nil
}
