package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/replydesk/internal/metrics"
	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

// mockPublishUseCase is a mock implementation of PublishUseCase for decorator testing.
type mockPublishUseCase struct {
	mock.Mock
}

func (m *mockPublishUseCase) Publish(
	ctx context.Context,
	input *publishDomain.PublishInput,
) (*publishDomain.PublishResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*publishDomain.PublishResult), args.Error(1)
}

var _ PublishUseCase = (*mockPublishUseCase)(nil)

func TestPublishMetricsDecorator_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mockPublishUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &publishDomain.PublishInput{Token: "tok-1", ReplyText: "Vielen Dank!"}
		expected := &publishDomain.PublishResult{Comment: "Vielen Dank!"}

		mockUseCase.On("Publish", ctx, input).Return(expected, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "publish", "publish", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "publish", "publish", mock.AnythingOfType("time.Duration"), "success").
			Return().Once()

		decorator := NewPublishUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Publish(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mockPublishUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &publishDomain.PublishInput{Token: "tok-1", ReplyText: "Vielen Dank!"}

		mockUseCase.On("Publish", ctx, input).Return(nil, assert.AnError).Once()
		mockMetrics.On("RecordOperation", ctx, "publish", "publish", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "publish", "publish", mock.AnythingOfType("time.Duration"), "error").
			Return().Once()

		decorator := NewPublishUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Publish(ctx, input)

		assert.Error(t, err)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}
