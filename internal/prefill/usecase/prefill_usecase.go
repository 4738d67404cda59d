package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/allisson/replydesk/internal/composer"
	apperrors "github.com/allisson/replydesk/internal/errors"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
	prefillService "github.com/allisson/replydesk/internal/prefill/service"
)

// prefillUseCase implements the PrefillUseCase interface.
type prefillUseCase struct {
	prefillRepo  PrefillRepository
	tokenService prefillService.TokenService
	ttl          time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// Create composes the review text with its attribution, generates a token
// and persists the record with zeroed usage bookkeeping.
func (p *prefillUseCase) Create(
	ctx context.Context,
	input *prefillDomain.CreatePrefillInput,
) (*prefillDomain.Prefill, error) {
	p.sweep(ctx)

	review := composer.AttributeReview(input.Review, input.Reviewer, input.ReviewedAt)

	token, err := p.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	prefill := &prefillDomain.Prefill{
		Token: token,
		Payload: prefillDomain.Payload{
			prefillDomain.PayloadKeyReview:        review,
			prefillDomain.PayloadKeyReviewer:      strings.TrimSpace(input.Reviewer),
			prefillDomain.PayloadKeyReviewedAt:    strings.TrimSpace(input.ReviewedAt),
			prefillDomain.PayloadKeyRating:        strings.TrimSpace(input.Rating),
			prefillDomain.PayloadKeyAccountID:     strings.TrimSpace(input.AccountID),
			prefillDomain.PayloadKeyLocationID:    strings.TrimSpace(input.LocationID),
			prefillDomain.PayloadKeyReviewID:      strings.TrimSpace(input.ReviewID),
			prefillDomain.PayloadKeyStoreCode:     strings.TrimSpace(input.StoreCode),
			prefillDomain.PayloadKeyLocationTitle: strings.TrimSpace(input.LocationTitle),
		},
		CreatedAt: p.now().UTC().Unix(),
	}

	if err := p.prefillRepo.Create(ctx, prefill); err != nil {
		return nil, err
	}

	missing := prefill.Payload.PublishMissing()
	p.logger.Info("prefill created",
		slog.Bool("publish_ready", len(missing) == 0),
		slog.String("publish_missing", strings.Join(missing, ",")),
	)

	return prefill, nil
}

// Resolve sweeps expired records and looks up the token. A record that
// outlived its TTL but survived the sweep is still treated as not found.
func (p *prefillUseCase) Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error) {
	p.sweep(ctx)

	prefill, err := p.prefillRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if prefill.CreatedAt < p.expiryCutoff() {
		return nil, apperrors.ErrNotFound
	}

	return prefill, nil
}

// MarkUsed records a consumption of the token. Callers treat failures as
// non-fatal bookkeeping problems.
func (p *prefillUseCase) MarkUsed(ctx context.Context, token string) error {
	return p.prefillRepo.MarkUsed(ctx, token, p.now().UTC().Unix())
}

// CleanExpired removes expired records and returns the deleted count. In
// dry-run mode it counts the expired records without deleting them.
func (p *prefillUseCase) CleanExpired(ctx context.Context, dryRun bool) (int64, error) {
	if dryRun {
		return p.prefillRepo.CountExpired(ctx, p.expiryCutoff())
	}
	return p.prefillRepo.DeleteExpired(ctx, p.expiryCutoff())
}

// sweep opportunistically deletes expired records. Sweep failures are
// logged and swallowed so they never block the primary operation.
func (p *prefillUseCase) sweep(ctx context.Context) {
	deleted, err := p.prefillRepo.DeleteExpired(ctx, p.expiryCutoff())
	if err != nil {
		p.logger.Warn("prefill sweep failed", slog.String("error", err.Error()))
		return
	}
	if deleted > 0 {
		p.logger.Info("expired prefills removed", slog.Int64("count", deleted))
	}
}

func (p *prefillUseCase) expiryCutoff() int64 {
	return p.now().UTC().Add(-p.ttl).Unix()
}

// NewPrefillUseCase creates a new prefill use case instance with the provided dependencies.
func NewPrefillUseCase(
	prefillRepo PrefillRepository,
	tokenService prefillService.TokenService,
	ttl time.Duration,
	logger *slog.Logger,
) PrefillUseCase {
	return &prefillUseCase{
		prefillRepo:  prefillRepo,
		tokenService: tokenService,
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}
