package commands

import (
	"fmt"
	"io"
	"log/slog"

	publishService "github.com/allisson/replydesk/internal/publish/service"
)

// RunHashBasicPassword hashes a plain password with Argon2id for the publish
// endpoint's basic auth configuration. The plaintext never leaves the process;
// only the hash is printed.
//
// Output format:
//   - PUBLISH_BASIC_PASSWORD_HASH="<argon2id-hash>"
func RunHashBasicPassword(
	passwordService publishService.PasswordService,
	logger *slog.Logger,
	writer io.Writer,
	password string,
) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hashedPassword, err := passwordService.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Info("password hashed")

	fmt.Fprintln(writer, "# Publish Basic Auth Configuration")
	fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "PUBLISH_BASIC_PASSWORD_HASH=\"%s\"\n", hashedPassword)

	return nil
}
