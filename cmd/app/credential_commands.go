package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/replydesk/cmd/app/commands"
	"github.com/allisson/replydesk/internal/app"
	"github.com/allisson/replydesk/internal/config"
)

func getCredentialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-basic-password",
			Usage: "Hash a password for the publish endpoint's basic auth",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plain password to hash",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashBasicPassword(
					container.PasswordService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("password"),
				)
			},
		},
		{
			Name:  "seal-credential",
			Usage: "Encrypt a credential with the configured sealed keeper",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Plaintext credential to seal",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resolver, err := container.SealedResolver()
				if err != nil {
					return err
				}

				return commands.RunSealCredential(
					ctx,
					resolver,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("value"),
				)
			},
		},
	}
}
