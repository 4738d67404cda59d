package app

import (
	"fmt"

	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
	draftingHTTP "github.com/allisson/replydesk/internal/drafting/http"
	draftingService "github.com/allisson/replydesk/internal/drafting/service"
	draftingUsecase "github.com/allisson/replydesk/internal/drafting/usecase"
)

// PromptBuilder returns the prompt builder for the generation collaborator.
func (c *Container) PromptBuilder() (draftingService.PromptBuilder, error) {
	var err error
	c.promptBuilderInit.Do(func() {
		c.promptBuilder, err = c.initPromptBuilder()
		if err != nil {
			c.initErrors["promptBuilder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["promptBuilder"]; exists {
		return nil, storedErr
	}
	return c.promptBuilder, nil
}

// GenerationClient returns the generation collaborator client.
func (c *Container) GenerationClient() (draftingService.GenerationClient, error) {
	var err error
	c.generationClientInit.Do(func() {
		c.generationClient, err = c.initGenerationClient()
		if err != nil {
			c.initErrors["generationClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generationClient"]; exists {
		return nil, storedErr
	}
	return c.generationClient, nil
}

// DraftUseCase returns the draft use case.
func (c *Container) DraftUseCase() (draftingUsecase.DraftUseCase, error) {
	var err error
	c.draftUseCaseInit.Do(func() {
		c.draftUseCase, err = c.initDraftUseCase()
		if err != nil {
			c.initErrors["draftUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["draftUseCase"]; exists {
		return nil, storedErr
	}
	return c.draftUseCase, nil
}

// DraftHandler returns the HTTP handler for draft submissions.
func (c *Container) DraftHandler() (*draftingHTTP.DraftHandler, error) {
	var err error
	c.draftHandlerInit.Do(func() {
		c.draftHandler, err = c.initDraftHandler()
		if err != nil {
			c.initErrors["draftHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["draftHandler"]; exists {
		return nil, storedErr
	}
	return c.draftHandler, nil
}

// initPromptBuilder creates the prompt builder, loading the template override
// when one is configured.
func (c *Container) initPromptBuilder() (draftingService.PromptBuilder, error) {
	promptBuilder, err := draftingService.NewPromptBuilder(c.config.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt builder: %w", err)
	}
	return promptBuilder, nil
}

// initGenerationClient creates the generation collaborator client.
func (c *Container) initGenerationClient() (draftingService.GenerationClient, error) {
	generationConfig := draftingService.GenerationConfig{
		URL:     c.config.GenerationURL,
		APIKey:  c.config.GenerationAPIKey,
		Model:   c.config.GenerationModel,
		Timeout: c.config.GenerationTimeout,
	}

	return draftingService.NewGenerationClient(generationConfig, c.Logger()), nil
}

// initDraftUseCase creates the draft use case with all its dependencies.
// The prefill use case backs token resolution and the notification use case
// receives the insights events; both degrade gracefully without a database.
func (c *Container) initDraftUseCase() (draftingUsecase.DraftUseCase, error) {
	promptBuilder, err := c.PromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt builder for draft use case: %w", err)
	}

	generationClient, err := c.GenerationClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get generation client for draft use case: %w", err)
	}

	prefillStore, err := c.PrefillUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get prefill use case for draft use case: %w", err)
	}

	notifier, err := c.NotificationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification use case for draft use case: %w", err)
	}

	defaults := draftingDomain.DraftDefaults{
		SelectedTone:       c.config.DraftDefaultTone,
		CorporateSignature: c.config.DraftDefaultSignature,
		LanguageMode:       c.config.DraftDefaultLanguage,
	}

	baseUseCase := draftingUsecase.NewDraftUseCase(
		promptBuilder,
		generationClient,
		prefillStore,
		notifier,
		defaults,
		c.config.GenerationMaxConcurrency,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for draft use case: %w", err)
		}
		return draftingUsecase.NewDraftUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initDraftHandler creates the draft HTTP handler with all its dependencies.
func (c *Container) initDraftHandler() (*draftingHTTP.DraftHandler, error) {
	draftUseCase, err := c.DraftUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft use case for draft handler: %w", err)
	}

	return draftingHTTP.NewDraftHandler(draftUseCase, c.Logger()), nil
}
