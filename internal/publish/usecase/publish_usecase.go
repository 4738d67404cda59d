package usecase

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/allisson/replydesk/internal/errors"
	platformDomain "github.com/allisson/replydesk/internal/platform/domain"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
)

// publishUseCase implements PublishUseCase.
type publishUseCase struct {
	prefillStore PrefillStore
	reviewClient ReviewClient
	dryRun       bool
	logger       *slog.Logger
}

// Publish runs a single publish attempt. Publishing is create-only from this
// system's perspective: an existing reply rejects the attempt unless the
// caller explicitly forces past the precheck.
func (p *publishUseCase) Publish(
	ctx context.Context,
	input *publishDomain.PublishInput,
) (*publishDomain.PublishResult, error) {
	// Validate input
	token := strings.TrimSpace(input.Token)
	replyText := strings.TrimSpace(input.ReplyText)

	if token == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token is required")
	}
	if replyText == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "reply text is required")
	}
	if utf8.RuneCountInString(replyText) > publishDomain.MaxReplyLength {
		return nil, apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"reply text exceeds %d characters",
			publishDomain.MaxReplyLength,
		)
	}

	// Resolve the stored payload
	prefill, err := p.prefillStore.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if missing := prefill.Payload.PublishMissing(); len(missing) > 0 {
		return nil, apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"payload is missing publish identifiers: %s",
			strings.Join(missing, ", "),
		)
	}

	target := platformDomain.ReviewTarget{
		AccountID:  prefill.Payload.String(prefillDomain.PayloadKeyAccountID),
		LocationID: prefill.Payload.String(prefillDomain.PayloadKeyLocationID),
		ReviewID:   prefill.Payload.String(prefillDomain.PayloadKeyReviewID),
	}

	// Precheck
	state := publishDomain.StatePrecheckSkipped
	if !input.Force {
		review, err := p.reviewClient.GetReview(ctx, target)
		if err != nil {
			return nil, err
		}
		if review.HasReply() {
			return nil, apperrors.Wrap(apperrors.ErrConflict, "review already has a reply")
		}
		state = publishDomain.StatePrecheckPassed
	}

	p.logger.Debug("publish precheck complete",
		slog.String("review_id", target.ReviewID),
		slog.String("state", string(state)),
	)

	// Publish
	if p.dryRun {
		p.logger.Info("publish dry run",
			slog.String("review_id", target.ReviewID),
			slog.Bool("force", input.Force),
			slog.Int("reply_length", utf8.RuneCountInString(replyText)),
		)
		return &publishDomain.PublishResult{Comment: replyText, DryRun: true}, nil
	}

	reply, err := p.reviewClient.UpsertReply(ctx, target, replyText)
	if err != nil {
		return nil, err
	}

	// Usage bookkeeping must never turn a stored reply into an error.
	if err := p.prefillStore.MarkUsed(ctx, token); err != nil {
		p.logger.Warn("failed to mark prefill used after publish",
			slog.Any("error", err),
		)
	}

	p.logger.Info("reply published",
		slog.String("review_id", target.ReviewID),
		slog.Bool("force", input.Force),
		slog.String("state", string(publishDomain.StatePublished)),
	)

	return &publishDomain.PublishResult{
		Comment:    reply.Comment,
		UpdateTime: reply.UpdateTime,
	}, nil
}

// NewPublishUseCase creates a new publish use case. When dryRun is set the
// write step is skipped and attempts report their would-be reply instead.
func NewPublishUseCase(
	prefillStore PrefillStore,
	reviewClient ReviewClient,
	dryRun bool,
	logger *slog.Logger,
) PublishUseCase {
	return &publishUseCase{
		prefillStore: prefillStore,
		reviewClient: reviewClient,
		dryRun:       dryRun,
		logger:       logger,
	}
}
