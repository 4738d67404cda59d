// Package sealed resolves configuration values of the form
// "sealed:<base64 ciphertext>" by decrypting them with a gocloud.dev
// secrets keeper. Plain values pass through untouched, so operators can
// mix sealed and plain credentials in the same environment.
package sealed

import (
	"context"
	"encoding/base64"
	"strings"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/replydesk/internal/errors"

	// Register all keeper provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Prefix marks a configuration value as sealed.
const Prefix = "sealed:"

// IsSealed reports whether value carries the sealed prefix.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Resolver decrypts sealed configuration values.
type Resolver interface {
	// Resolve returns the plaintext for a sealed value. Plain values are
	// returned unchanged.
	Resolve(ctx context.Context, value string) (string, error)
	// Seal encrypts a plaintext into a sealed value.
	Seal(ctx context.Context, plaintext string) (string, error)
	// Close releases the underlying keeper.
	Close() error
}

type resolver struct {
	keeper *secrets.Keeper
}

// NewResolver opens a keeper for the given URL. Supported schemes:
// gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://.
// An empty URL returns a disabled resolver that passes plain values
// through and fails on sealed ones, so deployments without sealed
// values need no keeper.
func NewResolver(ctx context.Context, keeperURL string) (Resolver, error) {
	if keeperURL == "" {
		return &disabledResolver{}, nil
	}
	keeper, err := secrets.OpenKeeper(ctx, keeperURL)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "failed to open sealed keeper: %v", err)
	}
	return &resolver{keeper: keeper}, nil
}

func (r *resolver) Resolve(ctx context.Context, value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}
	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, Prefix))
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrConfiguration, "sealed value is not valid base64: %v", err)
	}
	plaintext, err := r.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrConfiguration, "failed to decrypt sealed value: %v", err)
	}
	return string(plaintext), nil
}

func (r *resolver) Seal(ctx context.Context, plaintext string) (string, error) {
	ciphertext, err := r.keeper.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrConfiguration, "failed to seal value: %v", err)
	}
	return Prefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (r *resolver) Close() error {
	return r.keeper.Close()
}

// disabledResolver serves deployments without a configured keeper.
type disabledResolver struct{}

func (d *disabledResolver) Resolve(_ context.Context, value string) (string, error) {
	if IsSealed(value) {
		return "", apperrors.Wrap(apperrors.ErrConfiguration, "sealed value present but no sealed keeper url is configured")
	}
	return value, nil
}

func (d *disabledResolver) Seal(_ context.Context, _ string) (string, error) {
	return "", apperrors.Wrap(apperrors.ErrConfiguration, "no sealed keeper url is configured")
}

func (d *disabledResolver) Close() error {
	return nil
}
