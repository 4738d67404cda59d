package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	notificationUsecase "github.com/allisson/replydesk/internal/notification/usecase"
)

// RunFlushWebhookEvents drains the webhook event outbox, delivering pending
// events until none remain. Supports dry-run mode to report the pending count
// without delivering and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunFlushWebhookEvents(
	ctx context.Context,
	notificationUseCase notificationUsecase.NotificationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	dryRun bool,
	format string,
) error {
	logger.Info("flushing webhook events",
		slog.Bool("dry_run", dryRun),
	)

	// Deliver pending events or count them in dry-run mode
	count, err := notificationUseCase.Flush(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("failed to flush webhook events: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputFlushJSON(writer, count, dryRun)
	} else {
		outputFlushText(writer, count, dryRun)
	}

	logger.Info("flush completed",
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputFlushText outputs the result in human-readable text format.
func outputFlushText(writer io.Writer, count int64, dryRun bool) {
	if dryRun {
		fmt.Fprintf(writer, "Dry-run mode: %d webhook event(s) pending delivery\n", count)
	} else {
		fmt.Fprintf(writer, "Successfully processed %d webhook event(s)\n", count)
	}
}

// outputFlushJSON outputs the result in JSON format for machine consumption.
func outputFlushJSON(writer io.Writer, count int64, dryRun bool) {
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
