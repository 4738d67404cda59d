// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
)

// MockDraftUseCase is a mock implementation of DraftUseCase for testing.
type MockDraftUseCase struct {
	mock.Mock
}

// Draft mocks the Draft method of DraftUseCase.
func (m *MockDraftUseCase) Draft(
	ctx context.Context,
	input *draftingDomain.DraftInput,
) (*draftingDomain.DraftResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*draftingDomain.DraftResult), args.Error(1)
}
