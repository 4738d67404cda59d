package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/replydesk/internal/errors"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
	"github.com/allisson/replydesk/internal/testutil"
)

func TestMySQLPrefillRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLPrefillRepository(db)

		prefill := &prefillDomain.Prefill{
			Token:     "tok-1",
			Payload:   prefillDomain.Payload{"review": "Great service"},
			CreatedAt: 1700000000,
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO prefills (token, payload, created_at, used_at, used_count)")).
			WithArgs("tok-1", []byte(`{"review":"Great service"}`), int64(1700000000), nil, 0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, prefill)
		assert.NoError(t, err)
	})

	t.Run("Get", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLPrefillRepository(db)

		rows := sqlmock.NewRows([]string{"token", "payload", "created_at", "used_at", "used_count"}).
			AddRow("tok-1", []byte(`{"review":"Great service"}`), int64(1700000000), nil, 0)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT token, payload, created_at, used_at, used_count")).
			WithArgs("tok-1").
			WillReturnRows(rows)

		prefill, err := repo.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Great service", prefill.Payload.String(prefillDomain.PayloadKeyReview))
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLPrefillRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT token, payload, created_at, used_at, used_count")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"token", "payload", "created_at", "used_at", "used_count"}))

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("MarkUsed", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLPrefillRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE prefills")).
			WithArgs(int64(1700000100), "tok-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkUsed(ctx, "tok-1", 1700000100)
		assert.NoError(t, err)
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLPrefillRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM prefills WHERE created_at <")).
			WithArgs(int64(1699740800)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		deleted, err := repo.DeleteExpired(ctx, 1699740800)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
	})

	t.Run("CountExpired", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLPrefillRepository(db)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(2))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM prefills WHERE created_at <")).
			WithArgs(int64(1699740800)).
			WillReturnRows(rows)

		count, err := repo.CountExpired(ctx, 1699740800)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
