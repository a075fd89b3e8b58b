package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/custody/cmd/app/commands"
	"github.com/allisson/custody/internal/app"
	"github.com/allisson/custody/internal/config"
)

func getEvidenceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "register-evidence",
			Usage: "Hash a file, register it as evidence and record its initial upload",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Required: true,
					Usage:    "Path to the evidence file",
				},
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "file",
					Usage:   "Evidence type: file, email or memory_dump",
				},
				&cli.StringFlag{
					Name:  "identifier",
					Usage: "Collector identifier (defaults to the file path)",
				},
				handlerFlag(),
				locationFlag(),
				&cli.StringFlag{
					Name:  "notes",
					Usage: "Free-form notes for the initial custody event",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				evidenceUseCase, err := container.EvidenceUseCase()
				if err != nil {
					return err
				}

				custodyUseCase, err := container.CustodyUseCase()
				if err != nil {
					return err
				}

				return commands.RunRegisterEvidence(
					ctx,
					evidenceUseCase,
					custodyUseCase,
					container.ContentHasher(),
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.RegisterEvidenceParams{
						EvidenceType: cmd.String("type"),
						Identifier:   cmd.String("identifier"),
						FilePath:     cmd.String("file"),
						Handler:      withDefault(cmd.String("handler"), cfg.DefaultHandler),
						Location:     withDefault(cmd.String("location"), cfg.DefaultLocation),
						Notes:        cmd.String("notes"),
						Format:       cmd.String("format"),
					},
				)
			},
		},
		{
			Name:  "remove-evidence",
			Usage: "Delete evidence and its custody history, keeping a deletion journal entry",
			Flags: []cli.Flag{
				evidenceIDFlag(),
				handlerFlag(),
				&cli.StringFlag{
					Name:  "reason",
					Usage: "Why the evidence is being removed",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				evidenceUseCase, err := container.EvidenceUseCase()
				if err != nil {
					return err
				}

				return commands.RunRemoveEvidence(
					ctx,
					evidenceUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("evidence-id"),
					withDefault(cmd.String("handler"), cfg.DefaultHandler),
					cmd.String("reason"),
					cmd.String("format"),
				)
			},
		},
	}
}
