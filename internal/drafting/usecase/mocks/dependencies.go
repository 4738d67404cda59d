// Package mocks provides mock implementations for testing the draft use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// MockPromptBuilder is a mock implementation of PromptBuilder for testing.
type MockPromptBuilder struct {
	mock.Mock
}

// Build mocks the Build method of PromptBuilder.
func (m *MockPromptBuilder) Build(
	entry *draftingDomain.DraftEntry,
	settings *draftingDomain.DraftSettings,
) string {
	args := m.Called(entry, settings)
	return args.String(0)
}

// MockGenerationClient is a mock implementation of GenerationClient for testing.
type MockGenerationClient struct {
	mock.Mock
}

// Generate mocks the Generate method of GenerationClient.
func (m *MockGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

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

// MockInsightsNotifier is a mock implementation of InsightsNotifier for testing.
type MockInsightsNotifier struct {
	mock.Mock
}

// Enqueue mocks the Enqueue method of InsightsNotifier.
func (m *MockInsightsNotifier) Enqueue(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}
