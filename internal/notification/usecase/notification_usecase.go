package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/replydesk/internal/database"
	apperrors "github.com/allisson/replydesk/internal/errors"
	notificationDomain "github.com/allisson/replydesk/internal/notification/domain"
	notificationService "github.com/allisson/replydesk/internal/notification/service"
)

// Config holds dispatcher settings.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// notificationUseCase implements NotificationUseCase. A nil repository or
// transaction manager puts it in degraded mode: events skip the outbox and
// are delivered directly on a detached goroutine.
type notificationUseCase struct {
	config    Config
	txManager database.TxManager
	eventRepo WebhookEventRepository
	sender    notificationService.WebhookSender
	logger    *slog.Logger
}

// Enqueue records an event for delivery. Events are dropped with a debug log
// when no webhook is configured.
func (n *notificationUseCase) Enqueue(ctx context.Context, eventType string, payload any) error {
	if !n.sender.Configured() {
		n.logger.Debug("webhook not configured; dropping notification",
			slog.String("event_type", eventType),
		)
		return nil
	}

	event, err := notificationDomain.NewWebhookEvent(eventType, payload)
	if err != nil {
		return err
	}

	if !n.durable() {
		n.sendDirect(ctx, event)
		return nil
	}

	if err := n.eventRepo.Create(ctx, event); err != nil {
		return err
	}

	n.logger.Info("webhook event enqueued",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
	)

	return nil
}

// Start runs the dispatcher loop until the context is canceled.
func (n *notificationUseCase) Start(ctx context.Context) error {
	if !n.durable() || !n.sender.Configured() {
		n.logger.Info("webhook dispatcher disabled")
		return nil
	}

	n.logger.Info("starting webhook dispatcher",
		slog.Duration("interval", n.config.Interval),
		slog.Int("batch_size", n.config.BatchSize),
	)

	ticker := time.NewTicker(n.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("stopping webhook dispatcher")
			return ctx.Err()
		case <-ticker.C:
			if err := n.ProcessEvents(ctx); err != nil {
				n.logger.Error("failed to process webhook events", slog.String("error", err.Error()))
			}
		}
	}
}

// ProcessEvents claims and delivers one batch of pending events.
func (n *notificationUseCase) ProcessEvents(ctx context.Context) error {
	if !n.durable() {
		return apperrors.Wrap(apperrors.ErrUnavailable, "webhook outbox requires a database")
	}

	_, _, err := n.processBatch(ctx)
	return err
}

// Flush delivers pending events until none remain and returns the number of
// events delivered. In dry-run mode it only counts pending events.
func (n *notificationUseCase) Flush(ctx context.Context, dryRun bool) (int64, error) {
	if !n.durable() {
		return 0, apperrors.Wrap(apperrors.ErrUnavailable, "webhook outbox requires a database")
	}

	if dryRun {
		return n.eventRepo.CountPending(ctx)
	}

	var delivered int64
	for {
		claimed, sent, err := n.processBatch(ctx)
		if err != nil {
			return delivered, err
		}
		delivered += int64(sent)
		if claimed == 0 {
			return delivered, nil
		}
	}
}

// processBatch claims pending events inside a transaction so the row locks
// hold until their status updates commit. Delivery failures increment the
// retry counter; events that exhaust the retry budget are marked failed.
func (n *notificationUseCase) processBatch(ctx context.Context) (claimed int, delivered int, err error) {
	err = n.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := n.eventRepo.GetPendingEvents(ctx, n.config.BatchSize)
		if err != nil {
			return err
		}

		claimed = len(events)
		if claimed == 0 {
			return nil
		}

		n.logger.Info("processing webhook events", slog.Int("count", claimed))

		for _, event := range events {
			sendErr := n.sender.Send(ctx, event.EventType, []byte(event.Payload))
			if sendErr != nil {
				n.logger.Error("failed to deliver webhook event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", event.EventType),
					slog.String("error", sendErr.Error()),
				)

				event.Retries++
				errorMsg := sendErr.Error()
				event.LastError = &errorMsg

				if event.Retries >= n.config.MaxRetries {
					event.Status = notificationDomain.WebhookEventStatusFailed
				}

				if err := n.eventRepo.Update(ctx, event); err != nil {
					return err
				}
				continue
			}

			now := time.Now().UTC()
			event.Status = notificationDomain.WebhookEventStatusProcessed
			event.ProcessedAt = &now

			if err := n.eventRepo.Update(ctx, event); err != nil {
				return err
			}
			delivered++
		}

		return nil
	})

	return claimed, delivered, err
}

// sendDirect delivers on a detached goroutine that outlives the caller's
// context. Failures are logged and swallowed.
func (n *notificationUseCase) sendDirect(ctx context.Context, event *notificationDomain.WebhookEvent) {
	sendCtx := context.WithoutCancel(ctx)

	go func() {
		if err := n.sender.Send(sendCtx, event.EventType, []byte(event.Payload)); err != nil {
			n.logger.Warn("direct webhook delivery failed",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType),
				slog.String("error", err.Error()),
			)
			return
		}

		n.logger.Info("webhook delivered directly",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
		)
	}()
}

func (n *notificationUseCase) durable() bool {
	return n.txManager != nil && n.eventRepo != nil
}

// NewNotificationUseCase creates a notification use case. Pass a nil
// repository and transaction manager to run in degraded (direct-send) mode.
func NewNotificationUseCase(
	config Config,
	txManager database.TxManager,
	eventRepo WebhookEventRepository,
	sender notificationService.WebhookSender,
	logger *slog.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		config:    config,
		txManager: txManager,
		eventRepo: eventRepo,
		sender:    sender,
		logger:    logger,
	}
}
