package app

import (
	"context"

	apperrors "github.com/allisson/replydesk/internal/errors"
	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
	prefillUsecase "github.com/allisson/replydesk/internal/prefill/usecase"
)

// unavailablePrefillUseCase stands in for the prefill use case while the
// database is unreachable. Every operation reports unavailability, which the
// HTTP layer maps to a 503 response.
type unavailablePrefillUseCase struct{}

var _ prefillUsecase.PrefillUseCase = (*unavailablePrefillUseCase)(nil)

func newUnavailablePrefillUseCase() *unavailablePrefillUseCase {
	return &unavailablePrefillUseCase{}
}

func (u *unavailablePrefillUseCase) Create(ctx context.Context, input *prefillDomain.CreatePrefillInput) (*prefillDomain.Prefill, error) {
	return nil, apperrors.Wrap(apperrors.ErrUnavailable, "prefill store requires a database")
}

func (u *unavailablePrefillUseCase) Resolve(ctx context.Context, token string) (*prefillDomain.Prefill, error) {
	return nil, apperrors.Wrap(apperrors.ErrUnavailable, "prefill store requires a database")
}

func (u *unavailablePrefillUseCase) MarkUsed(ctx context.Context, token string) error {
	return apperrors.Wrap(apperrors.ErrUnavailable, "prefill store requires a database")
}

func (u *unavailablePrefillUseCase) CleanExpired(ctx context.Context, dryRun bool) (int64, error) {
	return 0, apperrors.Wrap(apperrors.ErrUnavailable, "prefill store requires a database")
}
