package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/replydesk/internal/sealed"
)

// RunSealCredential encrypts a plaintext credential with the configured
// sealed keeper so it can be stored in configuration. The output value can be
// used for any setting that accepts sealed values (prefill secret, OAuth
// client secret, OAuth refresh token, webhook signing key).
//
// Requirements: SEALED_KEEPER_URL must be set.
func RunSealCredential(
	ctx context.Context,
	resolver sealed.Resolver,
	logger *slog.Logger,
	writer io.Writer,
	plaintext string,
) error {
	if plaintext == "" {
		return fmt.Errorf("value must not be empty")
	}

	sealedValue, err := resolver.Seal(ctx, plaintext)
	if err != nil {
		return fmt.Errorf("failed to seal credential: %w", err)
	}

	logger.Info("credential sealed")

	fmt.Fprintln(writer, "# Sealed Credential")
	fmt.Fprintln(writer, "# Use this value in place of the plaintext in your .env file or secrets manager")
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, sealedValue)

	return nil
}
