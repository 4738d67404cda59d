package usecase

import (
	"context"
	"time"

	"github.com/allisson/replydesk/internal/metrics"
	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
)

// publishUseCaseWithMetrics decorates PublishUseCase with metrics instrumentation.
type publishUseCaseWithMetrics struct {
	next    PublishUseCase
	metrics metrics.BusinessMetrics
}

// NewPublishUseCaseWithMetrics wraps a PublishUseCase with metrics recording.
func NewPublishUseCaseWithMetrics(useCase PublishUseCase, m metrics.BusinessMetrics) PublishUseCase {
	return &publishUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Publish records metrics for publish attempts.
func (p *publishUseCaseWithMetrics) Publish(
	ctx context.Context,
	input *publishDomain.PublishInput,
) (*publishDomain.PublishResult, error) {
	start := time.Now()
	result, err := p.next.Publish(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "publish", "publish", status)
	p.metrics.RecordDuration(ctx, "publish", "publish", time.Since(start), status)

	return result, err
}
