package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/replydesk/internal/composer"
	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
	draftingService "github.com/allisson/replydesk/internal/drafting/service"
	apperrors "github.com/allisson/replydesk/internal/errors"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// draftFailureMessage fills the reply slot of an entry whose generation call
// failed.
const draftFailureMessage = "Die Antwort konnte nicht erstellt werden. Bitte versuchen Sie es erneut."

// draftUseCase implements the DraftUseCase interface.
type draftUseCase struct {
	promptBuilder    draftingService.PromptBuilder
	generationClient draftingService.GenerationClient
	prefillStore     PrefillStore
	notifier         InsightsNotifier
	defaults         draftingDomain.DraftDefaults
	maxConcurrency   int
	logger           *slog.Logger
}

// Draft drafts one reply per non-empty entry. A resolving token forces
// single-review mode on the stored review; the token is marked used exactly
// once per submission.
func (d *draftUseCase) Draft(
	ctx context.Context,
	input *draftingDomain.DraftInput,
) (*draftingDomain.DraftResult, error) {
	settings := input.Settings
	settings.ApplyDefaults(d.defaults)

	entries := input.Entries
	resolved := d.resolveToken(ctx, &settings)
	if resolved != nil {
		if len(entries) > 1 {
			d.logger.Warn("draft submission carries a token; forcing single-review mode",
				slog.Int("submitted_entries", len(entries)),
			)
		}
		entries = []draftingDomain.DraftEntry{tokenEntry(resolved)}
	}

	pending := collectEntries(entries)
	if len(pending) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "at least one non-empty review is required")
	}

	replies := d.draftAll(ctx, pending, &settings)

	if resolved != nil {
		// Usage bookkeeping must never fail a drafted batch.
		if err := d.prefillStore.MarkUsed(ctx, resolved.Token); err != nil {
			d.logger.Warn("failed to mark prefill used after drafting", slog.String("error", err.Error()))
		}
	}

	d.notifyInsights(ctx, resolved, replies)

	result := &draftingDomain.DraftResult{Replies: replies}
	if resolved != nil {
		result.Token = resolved.Token
		result.PublishReady = len(replies) == 1 && resolved.Payload.PublishReady()
	}

	d.logger.Info("draft submission completed",
		slog.Int("replies", len(replies)),
		slog.Bool("publish_ready", result.PublishReady),
	)

	return result, nil
}

// resolveToken resolves the submission token, when present. Resolution
// failures are logged and treated as an absent token so drafting keeps
// working without the store.
func (d *draftUseCase) resolveToken(
	ctx context.Context,
	settings *draftingDomain.DraftSettings,
) *prefillDomain.Prefill {
	token := strings.TrimSpace(settings.Token)
	if token == "" {
		return nil
	}

	prefill, err := d.prefillStore.Resolve(ctx, token)
	if err != nil {
		d.logger.Warn("draft token did not resolve", slog.String("error", err.Error()))
		return nil
	}

	return prefill
}

// draftAll drafts entries concurrently with a bounded fan-out. Slot order
// matches submission order.
func (d *draftUseCase) draftAll(
	ctx context.Context,
	entries []draftingDomain.DraftEntry,
	settings *draftingDomain.DraftSettings,
) []draftingDomain.DraftedReply {
	replies := make([]draftingDomain.DraftedReply, len(entries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.maxConcurrency)

	for i, entry := range entries {
		group.Go(func() error {
			replies[i] = d.draftOne(groupCtx, &entry, settings)
			return nil
		})
	}

	// Workers report failures through their reply slot, never as errors.
	_ = group.Wait()

	return replies
}

// draftOne builds the prompt, calls the generation collaborator and splits
// the raw draft into the public reply and insights. A generation failure
// yields an error message in the reply slot.
func (d *draftUseCase) draftOne(
	ctx context.Context,
	entry *draftingDomain.DraftEntry,
	settings *draftingDomain.DraftSettings,
) draftingDomain.DraftedReply {
	prompt := d.promptBuilder.Build(entry, settings)

	raw, err := d.generationClient.Generate(ctx, prompt)
	if err != nil {
		d.logger.Error("failed to generate draft reply", slog.String("error", err.Error()))
		return draftingDomain.DraftedReply{Review: entry.Review, Reply: draftFailureMessage}
	}

	reply, insights := composer.SplitInsights(raw)
	reply = composer.StripSignature(reply, settings.CorporateSignature)

	return draftingDomain.DraftedReply{Review: entry.Review, Reply: reply, Insights: insights}
}

// notifyInsights forwards extracted insights to the notification flow.
// Delivery is best-effort; failures are logged and swallowed.
func (d *draftUseCase) notifyInsights(
	ctx context.Context,
	resolved *prefillDomain.Prefill,
	replies []draftingDomain.DraftedReply,
) {
	items := make([]draftingDomain.InsightItem, 0, len(replies))
	for _, reply := range replies {
		if reply.Insights == "" {
			continue
		}
		items = append(items, draftingDomain.InsightItem{Review: reply.Review, Insights: reply.Insights})
	}
	if len(items) == 0 {
		return
	}

	event := &draftingDomain.InsightsEvent{Items: items}
	if resolved != nil {
		event.Token = resolved.Token
	}

	if err := d.notifier.Enqueue(ctx, draftingDomain.InsightsEventType, event); err != nil {
		d.logger.Warn("failed to enqueue insights notification", slog.String("error", err.Error()))
		return
	}

	d.logger.Info("insights notification enqueued", slog.Int("items", len(items)))
}

// tokenEntry builds the single entry drafted in single-review mode from the
// token payload. A malformed rating is treated as unset.
func tokenEntry(prefill *prefillDomain.Prefill) draftingDomain.DraftEntry {
	rating, err := strconv.Atoi(prefill.Payload.String(prefillDomain.PayloadKeyRating))
	if err != nil {
		rating = 0
	}

	return draftingDomain.DraftEntry{
		Review: prefill.Payload.String(prefillDomain.PayloadKeyReview),
		Rating: rating,
	}
}

// collectEntries keeps the first MaxEntries entries with non-blank review
// text, preserving submission order.
func collectEntries(entries []draftingDomain.DraftEntry) []draftingDomain.DraftEntry {
	pending := make([]draftingDomain.DraftEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Review) == "" {
			continue
		}
		pending = append(pending, entry)
		if len(pending) == draftingDomain.MaxEntries {
			break
		}
	}
	return pending
}

// NewDraftUseCase creates a new draft use case instance with the provided
// dependencies.
func NewDraftUseCase(
	promptBuilder draftingService.PromptBuilder,
	generationClient draftingService.GenerationClient,
	prefillStore PrefillStore,
	notifier InsightsNotifier,
	defaults draftingDomain.DraftDefaults,
	maxConcurrency int,
	logger *slog.Logger,
) DraftUseCase {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	return &draftUseCase{
		promptBuilder:    promptBuilder,
		generationClient: generationClient,
		prefillStore:     prefillStore,
		notifier:         notifier,
		defaults:         defaults,
		maxConcurrency:   maxConcurrency,
		logger:           logger,
	}
}
