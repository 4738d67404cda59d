// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
)

// MockPublishUseCase is a mock implementation of PublishUseCase for testing.
type MockPublishUseCase struct {
	mock.Mock
}

// Publish mocks the Publish method of PublishUseCase.
func (m *MockPublishUseCase) Publish(
	ctx context.Context,
	input *publishDomain.PublishInput,
) (*publishDomain.PublishResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*publishDomain.PublishResult), args.Error(1)
}
