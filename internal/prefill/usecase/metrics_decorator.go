package usecase

import (
	"context"
	"time"

	"github.com/allisson/replydesk/internal/metrics"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// prefillUseCaseWithMetrics decorates PrefillUseCase with metrics instrumentation.
type prefillUseCaseWithMetrics struct {
	next    PrefillUseCase
	metrics metrics.BusinessMetrics
}

// NewPrefillUseCaseWithMetrics wraps a PrefillUseCase with metrics recording.
func NewPrefillUseCaseWithMetrics(useCase PrefillUseCase, m metrics.BusinessMetrics) PrefillUseCase {
	return &prefillUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for token creation operations.
func (p *prefillUseCaseWithMetrics) Create(
	ctx context.Context,
	input *prefillDomain.CreatePrefillInput,
) (*prefillDomain.Prefill, error) {
	start := time.Now()
	prefill, err := p.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "prefill", "create", status)
	p.metrics.RecordDuration(ctx, "prefill", "create", time.Since(start), status)

	return prefill, err
}

// Resolve records metrics for token resolution operations.
func (p *prefillUseCaseWithMetrics) Resolve(
	ctx context.Context,
	token string,
) (*prefillDomain.Prefill, error) {
	start := time.Now()
	prefill, err := p.next.Resolve(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "prefill", "resolve", status)
	p.metrics.RecordDuration(ctx, "prefill", "resolve", time.Since(start), status)

	return prefill, err
}

// MarkUsed records metrics for usage bookkeeping operations.
func (p *prefillUseCaseWithMetrics) MarkUsed(ctx context.Context, token string) error {
	start := time.Now()
	err := p.next.MarkUsed(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "prefill", "mark_used", status)
	p.metrics.RecordDuration(ctx, "prefill", "mark_used", time.Since(start), status)

	return err
}

// CleanExpired records metrics for expired-record cleanup operations.
func (p *prefillUseCaseWithMetrics) CleanExpired(ctx context.Context, dryRun bool) (int64, error) {
	start := time.Now()
	deleted, err := p.next.CleanExpired(ctx, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "prefill", "clean_expired", status)
	p.metrics.RecordDuration(ctx, "prefill", "clean_expired", time.Since(start), status)

	return deleted, err
}
