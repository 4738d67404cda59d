package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

type mockPrefillUseCase struct {
	mock.Mock
}

func (m *mockPrefillUseCase) Create(
	ctx context.Context,
	input *prefillDomain.CreatePrefillInput,
) (*prefillDomain.Prefill, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefillDomain.Prefill), args.Error(1)
}

func (m *mockPrefillUseCase) Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefillDomain.Prefill), args.Error(1)
}

func (m *mockPrefillUseCase) MarkUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockPrefillUseCase) CleanExpired(ctx context.Context, dryRun bool) (int64, error) {
	args := m.Called(ctx, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

func TestRunCleanExpiredPrefills(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockPrefillUseCase{}
		mockUseCase.On("CleanExpired", ctx, false).Return(int64(100), nil)

		var out bytes.Buffer
		err := RunCleanExpiredPrefills(ctx, mockUseCase, logger, &out, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 100 expired prefill token(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("dry-run-text-output", func(t *testing.T) {
		mockUseCase := &mockPrefillUseCase{}
		mockUseCase.On("CleanExpired", ctx, true).Return(int64(25), nil)

		var out bytes.Buffer
		err := RunCleanExpiredPrefills(ctx, mockUseCase, logger, &out, true, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Would delete 25 expired prefill token(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockPrefillUseCase{}
		mockUseCase.On("CleanExpired", ctx, true).Return(int64(50), nil)

		var out bytes.Buffer
		err := RunCleanExpiredPrefills(ctx, mockUseCase, logger, &out, true, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 50`)
		require.Contains(t, out.String(), `"dry_run": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("usecase-error", func(t *testing.T) {
		mockUseCase := &mockPrefillUseCase{}
		mockUseCase.On("CleanExpired", ctx, false).Return(int64(0), errors.New("database gone"))

		var out bytes.Buffer
		err := RunCleanExpiredPrefills(ctx, mockUseCase, logger, &out, false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to clean expired prefill tokens")
		mockUseCase.AssertExpectations(t)
	})
}
