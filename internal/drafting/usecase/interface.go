// Package usecase implements business logic orchestration for the reply
// drafting flow. It fans review entries out to the generation collaborator,
// splits insights from drafted replies, and bridges the token handoff and
// notification concerns.
package usecase

import (
	"context"

	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// PrefillStore defines the prefill operations the drafting flow depends on.
type PrefillStore interface {
	Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error)
	MarkUsed(ctx context.Context, token string) error
}

// InsightsNotifier defines the notification operation the drafting flow
// depends on. Implementations decide between outbox and direct delivery and
// drop events when no webhook is configured.
type InsightsNotifier interface {
	Enqueue(ctx context.Context, eventType string, payload any) error
}

// DraftUseCase defines the interface for the drafting business logic.
type DraftUseCase interface {
	// Draft produces one reply per non-empty entry, up to the entry cap. A
	// token that resolves switches the submission into single-review mode.
	Draft(ctx context.Context, input *draftingDomain.DraftInput) (*draftingDomain.DraftResult, error)
}
