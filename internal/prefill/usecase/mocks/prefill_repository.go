// Package mocks provides mock implementations for testing prefill use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// MockPrefillRepository is a mock implementation of PrefillRepository for testing.
type MockPrefillRepository struct {
	mock.Mock
}

// Create mocks the Create method of PrefillRepository.
func (m *MockPrefillRepository) Create(ctx context.Context, prefill *prefillDomain.Prefill) error {
	args := m.Called(ctx, prefill)
	return args.Error(0)
}

// Get mocks the Get method of PrefillRepository.
func (m *MockPrefillRepository) Get(ctx context.Context, token string) (*prefillDomain.Prefill, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefillDomain.Prefill), args.Error(1)
}

// MarkUsed mocks the MarkUsed method of PrefillRepository.
func (m *MockPrefillRepository) MarkUsed(ctx context.Context, token string, usedAt int64) error {
	args := m.Called(ctx, token, usedAt)
	return args.Error(0)
}

// DeleteExpired mocks the DeleteExpired method of PrefillRepository.
func (m *MockPrefillRepository) DeleteExpired(ctx context.Context, olderThan int64) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of PrefillRepository.
func (m *MockPrefillRepository) CountExpired(ctx context.Context, olderThan int64) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
