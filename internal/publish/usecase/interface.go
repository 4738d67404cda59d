// Package usecase defines the interfaces and implementations for the publish
// flow. The publish use case orchestrates token resolution, the
// already-replied precheck, and the reply write against the review platform.
package usecase

import (
	"context"

	platformDomain "github.com/allisson/replydesk/internal/platform/domain"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
)

// PrefillStore defines the prefill operations the publish flow depends on.
type PrefillStore interface {
	Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error)
	MarkUsed(ctx context.Context, token string) error
}

// ReviewClient defines the platform operations the publish flow depends on.
type ReviewClient interface {
	GetReview(ctx context.Context, target platformDomain.ReviewTarget) (*platformDomain.Review, error)
	UpsertReply(ctx context.Context, target platformDomain.ReviewTarget, comment string) (*platformDomain.ReviewReply, error)
}

// PublishUseCase defines the interface for the publish business logic.
type PublishUseCase interface {
	// Publish runs a single publish attempt through the
	// Received/Validated/Precheck/Publish lifecycle.
	Publish(ctx context.Context, input *publishDomain.PublishInput) (*publishDomain.PublishResult, error)
}
