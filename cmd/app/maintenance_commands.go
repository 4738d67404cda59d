package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/replydesk/cmd/app/commands"
	"github.com/allisson/replydesk/internal/app"
	"github.com/allisson/replydesk/internal/config"
)

func getMaintenanceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-expired-prefills",
			Usage: "Delete prefill tokens older than the configured TTL",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many tokens would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				prefillUseCase, err := container.PrefillUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredPrefills(
					ctx,
					prefillUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "flush-webhook-events",
			Usage: "Deliver pending webhook events until the outbox is empty",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many events are pending without delivering",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				notificationUseCase, err := container.NotificationUseCase()
				if err != nil {
					return err
				}

				return commands.RunFlushWebhookEvents(
					ctx,
					notificationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
