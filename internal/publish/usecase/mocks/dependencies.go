// Package mocks provides mock implementations for testing the publish use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	platformDomain "github.com/allisson/replydesk/internal/platform/domain"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// MockPrefillStore is a mock implementation of PrefillStore for testing.
type MockPrefillStore struct {
	mock.Mock
}

// Resolve mocks the Resolve method of PrefillStore.
func (m *MockPrefillStore) Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefillDomain.Prefill), args.Error(1)
}

// MarkUsed mocks the MarkUsed method of PrefillStore.
func (m *MockPrefillStore) MarkUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockReviewClient is a mock implementation of ReviewClient for testing.
type MockReviewClient struct {
	mock.Mock
}

// GetReview mocks the GetReview method of ReviewClient.
func (m *MockReviewClient) GetReview(
	ctx context.Context,
	target platformDomain.ReviewTarget,
) (*platformDomain.Review, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platformDomain.Review), args.Error(1)
}

// UpsertReply mocks the UpsertReply method of ReviewClient.
func (m *MockReviewClient) UpsertReply(
	ctx context.Context,
	target platformDomain.ReviewTarget,
	comment string,
) (*platformDomain.ReviewReply, error) {
	args := m.Called(ctx, target, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platformDomain.ReviewReply), args.Error(1)
}
