package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	prefillUsecase "github.com/allisson/replydesk/internal/prefill/usecase"
)

// RunCleanExpiredPrefills deletes prefill tokens that outlived the configured TTL.
// Supports dry-run mode to preview deletion count and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredPrefills(
	ctx context.Context,
	prefillUseCase prefillUsecase.PrefillUseCase,
	logger *slog.Logger,
	writer io.Writer,
	dryRun bool,
	format string,
) error {
	logger.Info("cleaning expired prefill tokens",
		slog.Bool("dry_run", dryRun),
	)

	// Execute deletion or count operation
	count, err := prefillUseCase.CleanExpired(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean expired prefill tokens: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanExpiredJSON(writer, count, dryRun)
	} else {
		outputCleanExpiredText(writer, count, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(writer io.Writer, count int64, dryRun bool) {
	if dryRun {
		fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired prefill token(s)\n", count)
	} else {
		fmt.Fprintf(writer, "Successfully deleted %d expired prefill token(s)\n", count)
	}
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(writer io.Writer, count int64, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
