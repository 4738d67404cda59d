// Package usecase implements notification dispatch. Events are enqueued as
// webhook event rows and delivered by a background dispatcher; when the
// database is unavailable the use case falls back to direct delivery.
package usecase

import (
	"context"

	notificationDomain "github.com/allisson/replydesk/internal/notification/domain"
)

// WebhookEventRepository defines webhook event persistence operations.
type WebhookEventRepository interface {
	Create(ctx context.Context, event *notificationDomain.WebhookEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*notificationDomain.WebhookEvent, error)
	Update(ctx context.Context, event *notificationDomain.WebhookEvent) error
	CountPending(ctx context.Context) (int64, error)
}

// NotificationUseCase defines the interface for notification dispatch.
type NotificationUseCase interface {
	// Enqueue records an event for delivery. It is a no-op when no webhook
	// is configured and falls back to direct delivery in degraded mode.
	Enqueue(ctx context.Context, eventType string, payload any) error
	// Start runs the dispatcher loop until the context is canceled. It
	// returns immediately when dispatch is disabled.
	Start(ctx context.Context) error
	// ProcessEvents claims and delivers one batch of pending events.
	ProcessEvents(ctx context.Context) error
	// Flush delivers pending events until none remain and returns the number
	// of events attempted. In dry-run mode it only counts pending events.
	Flush(ctx context.Context, dryRun bool) (int64, error)
}
