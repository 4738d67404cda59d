package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/replydesk/internal/database"
	apperrors "github.com/allisson/replydesk/internal/errors"
	notificationDomain "github.com/allisson/replydesk/internal/notification/domain"
)

// MySQLWebhookEventRepository handles webhook event persistence for MySQL.
type MySQLWebhookEventRepository struct {
	db *sql.DB
}

// Create inserts a new webhook event. The UUID is stored as BINARY(16).
func (r *MySQLWebhookEventRepository) Create(
	ctx context.Context,
	event *notificationDomain.WebhookEvent,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO webhook_events (id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal webhook event id")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create webhook event")
	}
	return nil
}

// GetPendingEvents retrieves pending events oldest-first, locking the claimed
// rows for the duration of the surrounding transaction.
func (r *MySQLWebhookEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*notificationDomain.WebhookEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at
			  FROM webhook_events
			  WHERE status = ?
			  ORDER BY created_at ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, notificationDomain.WebhookEventStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending webhook events")
	}
	defer rows.Close() //nolint:errcheck

	var events []*notificationDomain.WebhookEvent
	for rows.Next() {
		var event notificationDomain.WebhookEvent
		var idBytes []byte

		err := rows.Scan(&idBytes, &event.EventType, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan webhook event")
		}

		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal webhook event id")
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate webhook events")
	}

	return events, nil
}

// Update updates a webhook event.
func (r *MySQLWebhookEventRepository) Update(
	ctx context.Context,
	event *notificationDomain.WebhookEvent,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE webhook_events
			  SET event_type = ?, payload = ?, status = ?, retries = ?, last_error = ?,
			      processed_at = ?, updated_at = NOW()
			  WHERE id = ?`

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal webhook event id")
	}

	_, err = querier.ExecContext(ctx, query, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update webhook event")
	}
	return nil
}

// CountPending counts events still waiting for delivery.
func (r *MySQLWebhookEventRepository) CountPending(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM webhook_events WHERE status = ?`

	var count int64
	err := querier.QueryRowContext(ctx, query, notificationDomain.WebhookEventStatusPending).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count pending webhook events")
	}
	return count, nil
}

// NewMySQLWebhookEventRepository creates a new MySQL webhook event repository instance.
func NewMySQLWebhookEventRepository(db *sql.DB) *MySQLWebhookEventRepository {
	return &MySQLWebhookEventRepository{db: db}
}
