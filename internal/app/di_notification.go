package app

import (
	"fmt"
	"log/slog"

	notificationRepository "github.com/allisson/replydesk/internal/notification/repository"
	notificationService "github.com/allisson/replydesk/internal/notification/service"
	notificationUsecase "github.com/allisson/replydesk/internal/notification/usecase"
)

// WebhookSender returns the webhook delivery sender.
func (c *Container) WebhookSender() (notificationService.WebhookSender, error) {
	var err error
	c.webhookSenderInit.Do(func() {
		c.webhookSender, err = c.initWebhookSender()
		if err != nil {
			c.initErrors["webhookSender"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookSender"]; exists {
		return nil, storedErr
	}
	return c.webhookSender, nil
}

// WebhookEventRepository returns the webhook event repository based on the configured database driver.
func (c *Container) WebhookEventRepository() (notificationUsecase.WebhookEventRepository, error) {
	var err error
	c.webhookEventRepoInit.Do(func() {
		c.webhookEventRepo, err = c.initWebhookEventRepository()
		if err != nil {
			c.initErrors["webhookEventRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookEventRepo"]; exists {
		return nil, storedErr
	}
	return c.webhookEventRepo, nil
}

// NotificationUseCase returns the notification use case. While the database
// is unreachable it returns a degraded instance that skips the outbox and
// delivers events directly, so drafting and publishing keep working.
func (c *Container) NotificationUseCase() (notificationUsecase.NotificationUseCase, error) {
	var err error
	c.notificationUseCaseInit.Do(func() {
		c.notificationUseCase, err = c.initNotificationUseCase()
		if err != nil {
			c.initErrors["notificationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationUseCase"]; exists {
		return nil, storedErr
	}
	return c.notificationUseCase, nil
}

// initWebhookSender creates the webhook sender, resolving the signing key
// when it is a sealed value.
func (c *Container) initWebhookSender() (notificationService.WebhookSender, error) {
	signingKey, err := c.resolveSecret("NOTIFY_SIGNING_KEY", c.config.NotifySigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing key for webhook sender: %w", err)
	}

	senderConfig := notificationService.SenderConfig{
		URL:        c.config.NotifyWebhookURL,
		Timeout:    c.config.NotifyTimeout,
		SigningKey: signingKey,
	}

	sender, err := notificationService.NewWebhookSender(senderConfig, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook sender: %w", err)
	}

	return sender, nil
}

// initWebhookEventRepository creates the webhook event repository based on the database driver.
func (c *Container) initWebhookEventRepository() (notificationUsecase.WebhookEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for webhook event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgresql":
		return notificationRepository.NewPostgreSQLWebhookEventRepository(db), nil
	case "mysql":
		return notificationRepository.NewMySQLWebhookEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initNotificationUseCase creates the notification use case with all its dependencies.
func (c *Container) initNotificationUseCase() (notificationUsecase.NotificationUseCase, error) {
	sender, err := c.WebhookSender()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook sender for notification use case: %w", err)
	}

	useCaseConfig := notificationUsecase.Config{
		Interval:   c.config.OutboxInterval,
		BatchSize:  c.config.OutboxBatchSize,
		MaxRetries: c.config.OutboxMaxRetries,
	}

	txManager, err := c.TxManager()
	if err != nil {
		c.Logger().Warn("webhook outbox unavailable; notifications fall back to direct delivery", slog.Any("error", err))
		return notificationUsecase.NewNotificationUseCase(useCaseConfig, nil, nil, sender, c.Logger()), nil
	}

	eventRepo, err := c.WebhookEventRepository()
	if err != nil {
		c.Logger().Warn("webhook outbox unavailable; notifications fall back to direct delivery", slog.Any("error", err))
		return notificationUsecase.NewNotificationUseCase(useCaseConfig, nil, nil, sender, c.Logger()), nil
	}

	return notificationUsecase.NewNotificationUseCase(useCaseConfig, txManager, eventRepo, sender, c.Logger()), nil
}
