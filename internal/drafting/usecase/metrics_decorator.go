package usecase

import (
	"context"
	"time"

	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
	"github.com/allisson/replydesk/internal/metrics"
)

// draftUseCaseWithMetrics decorates DraftUseCase with metrics instrumentation.
type draftUseCaseWithMetrics struct {
	next    DraftUseCase
	metrics metrics.BusinessMetrics
}

// NewDraftUseCaseWithMetrics wraps a DraftUseCase with metrics recording.
func NewDraftUseCaseWithMetrics(useCase DraftUseCase, m metrics.BusinessMetrics) DraftUseCase {
	return &draftUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Draft records metrics for draft submissions.
func (d *draftUseCaseWithMetrics) Draft(
	ctx context.Context,
	input *draftingDomain.DraftInput,
) (*draftingDomain.DraftResult, error) {
	start := time.Now()
	result, err := d.next.Draft(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "drafting", "draft", status)
	d.metrics.RecordDuration(ctx, "drafting", "draft", time.Since(start), status)

	return result, err
}
