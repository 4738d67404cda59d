// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// MockPrefillUseCase is a mock implementation of PrefillUseCase for testing.
type MockPrefillUseCase struct {
	mock.Mock
}

// Create mocks the Create method of PrefillUseCase.
func (m *MockPrefillUseCase) Create(
	ctx context.Context,
	input *prefillDomain.CreatePrefillInput,
) (*prefillDomain.Prefill, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefillDomain.Prefill), args.Error(1)
}

// Resolve mocks the Resolve method of PrefillUseCase.
func (m *MockPrefillUseCase) Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefillDomain.Prefill), args.Error(1)
}

// MarkUsed mocks the MarkUsed method of PrefillUseCase.
func (m *MockPrefillUseCase) MarkUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// CleanExpired mocks the CleanExpired method of PrefillUseCase.
func (m *MockPrefillUseCase) CleanExpired(ctx context.Context, dryRun bool) (int64, error) {
	args := m.Called(ctx, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
