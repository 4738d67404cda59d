// Package usecase implements business logic orchestration for prefill
// handoff tokens. It coordinates token generation, text composition and
// persistence, and piggybacks expired-record cleanup on writes and reads.
package usecase

import (
	"context"

	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// PrefillRepository defines the interface for Prefill persistence operations.
type PrefillRepository interface {
	Create(ctx context.Context, prefill *prefillDomain.Prefill) error
	Get(ctx context.Context, token string) (*prefillDomain.Prefill, error)
	MarkUsed(ctx context.Context, token string, usedAt int64) error
	DeleteExpired(ctx context.Context, olderThan int64) (int64, error)
	CountExpired(ctx context.Context, olderThan int64) (int64, error)
}

// PrefillUseCase defines the interface for prefill handoff business logic.
type PrefillUseCase interface {
	// Create composes the review text, generates a fresh token and persists
	// the record. Expired records are swept opportunistically first.
	Create(ctx context.Context, input *prefillDomain.CreatePrefillInput) (*prefillDomain.Prefill, error)
	// Resolve sweeps expired records and returns the record for the token.
	// It never mutates usage bookkeeping; callers that consume the token
	// must call MarkUsed separately.
	Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error)
	// MarkUsed records a consumption of the token.
	MarkUsed(ctx context.Context, token string) error
	// CleanExpired removes expired records and returns the deleted count.
	// In dry-run mode it only counts the records that would be deleted.
	CleanExpired(ctx context.Context, dryRun bool) (int64, error)
}
