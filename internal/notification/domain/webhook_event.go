// Package domain defines the webhook event entity used for notification
// dispatch. Events follow the transactional-outbox shape: rows are enqueued
// alongside the triggering operation and delivered by a background dispatcher.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

// WebhookEventStatus represents the delivery status of a webhook event.
type WebhookEventStatus string

const (
	WebhookEventStatusPending   WebhookEventStatus = "pending"
	WebhookEventStatusProcessed WebhookEventStatus = "processed"
	WebhookEventStatusFailed    WebhookEventStatus = "failed"
)

// WebhookEvent represents a pending or delivered notification.
type WebhookEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      WebhookEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWebhookEvent builds a pending event with a fresh UUIDv7 id and the
// payload serialized as JSON.
func NewWebhookEvent(eventType string, payload any) (*WebhookEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal webhook event payload")
	}

	return &WebhookEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(body),
		Status:    WebhookEventStatusPending,
	}, nil
}
