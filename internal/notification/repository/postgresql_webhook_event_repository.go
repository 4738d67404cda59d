// Package repository provides data persistence for webhook events.
// Pending events are claimed with FOR UPDATE SKIP LOCKED so concurrent
// dispatchers never deliver the same event twice.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/replydesk/internal/database"
	apperrors "github.com/allisson/replydesk/internal/errors"
	notificationDomain "github.com/allisson/replydesk/internal/notification/domain"
)

// PostgreSQLWebhookEventRepository handles webhook event persistence for PostgreSQL.
type PostgreSQLWebhookEventRepository struct {
	db *sql.DB
}

// Create inserts a new webhook event.
func (r *PostgreSQLWebhookEventRepository) Create(
	ctx context.Context,
	event *notificationDomain.WebhookEvent,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO webhook_events (id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, event.ID, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create webhook event")
	}
	return nil
}

// GetPendingEvents retrieves pending events oldest-first, locking the claimed
// rows for the duration of the surrounding transaction.
func (r *PostgreSQLWebhookEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*notificationDomain.WebhookEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at
			  FROM webhook_events
			  WHERE status = $1
			  ORDER BY created_at ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, notificationDomain.WebhookEventStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending webhook events")
	}
	defer rows.Close() //nolint:errcheck

	var events []*notificationDomain.WebhookEvent
	for rows.Next() {
		var event notificationDomain.WebhookEvent

		err := rows.Scan(&event.ID, &event.EventType, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan webhook event")
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate webhook events")
	}

	return events, nil
}

// Update updates a webhook event.
func (r *PostgreSQLWebhookEventRepository) Update(
	ctx context.Context,
	event *notificationDomain.WebhookEvent,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE webhook_events
			  SET event_type = $1, payload = $2, status = $3, retries = $4, last_error = $5,
			      processed_at = $6, updated_at = NOW()
			  WHERE id = $7`

	_, err := querier.ExecContext(ctx, query, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt, event.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update webhook event")
	}
	return nil
}

// CountPending counts events still waiting for delivery.
func (r *PostgreSQLWebhookEventRepository) CountPending(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM webhook_events WHERE status = $1`

	var count int64
	err := querier.QueryRowContext(ctx, query, notificationDomain.WebhookEventStatusPending).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count pending webhook events")
	}
	return count, nil
}

// NewPostgreSQLWebhookEventRepository creates a new PostgreSQL webhook event repository instance.
func NewPostgreSQLWebhookEventRepository(db *sql.DB) *PostgreSQLWebhookEventRepository {
	return &PostgreSQLWebhookEventRepository{db: db}
}
