// Package repository implements data persistence for prefill handoff
// records. Repositories support both PostgreSQL and MySQL; expired records
// are removed by a sweep piggybacked on writes and reads rather than by a
// background task.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/replydesk/internal/database"
	apperrors "github.com/allisson/replydesk/internal/errors"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// PostgreSQLPrefillRepository implements Prefill persistence for PostgreSQL databases.
type PostgreSQLPrefillRepository struct {
	db *sql.DB
}

// Create inserts a new prefill record into the PostgreSQL database.
func (p *PostgreSQLPrefillRepository) Create(ctx context.Context, prefill *prefillDomain.Prefill) error {
	querier := database.GetTx(ctx, p.db)

	payload, err := json.Marshal(prefill.Payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prefill payload")
	}

	query := `INSERT INTO prefills (token, payload, created_at, used_at, used_count)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = querier.ExecContext(
		ctx,
		query,
		prefill.Token,
		payload,
		prefill.CreatedAt,
		prefill.UsedAt,
		prefill.UsedCount,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create prefill")
	}
	return nil
}

// Get retrieves a prefill record by its token.
func (p *PostgreSQLPrefillRepository) Get(
	ctx context.Context,
	token string,
) (*prefillDomain.Prefill, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT token, payload, created_at, used_at, used_count
			  FROM prefills
			  WHERE token = $1`

	var prefill prefillDomain.Prefill
	var payload []byte
	err := querier.QueryRowContext(ctx, query, token).Scan(
		&prefill.Token,
		&payload,
		&prefill.CreatedAt,
		&prefill.UsedAt,
		&prefill.UsedCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get prefill by token")
	}

	if err := json.Unmarshal(payload, &prefill.Payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal prefill payload")
	}

	return &prefill, nil
}

// MarkUsed records a consumption of the token: sets used_at and increments
// used_count. Returns ErrNotFound when the token does not exist.
func (p *PostgreSQLPrefillRepository) MarkUsed(ctx context.Context, token string, usedAt int64) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE prefills
			  SET used_at = $1, used_count = used_count + 1
			  WHERE token = $2`

	result, err := querier.ExecContext(ctx, query, usedAt, token)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark prefill used")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes all records created before the given epoch-second
// cutoff and returns the number of deleted rows.
func (p *PostgreSQLPrefillRepository) DeleteExpired(ctx context.Context, olderThan int64) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM prefills WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired prefills")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return affected, nil
}

// CountExpired counts records created before the given epoch-second cutoff
// without deleting them.
func (p *PostgreSQLPrefillRepository) CountExpired(ctx context.Context, olderThan int64) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM prefills WHERE created_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired prefills")
	}
	return count, nil
}

// NewPostgreSQLPrefillRepository creates a new PostgreSQL Prefill repository instance.
func NewPostgreSQLPrefillRepository(db *sql.DB) *PostgreSQLPrefillRepository {
	return &PostgreSQLPrefillRepository{db: db}
}
