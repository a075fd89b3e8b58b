package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/custody/cmd/app/commands"
	"github.com/allisson/custody/internal/app"
	"github.com/allisson/custody/internal/config"
)

func getCustodyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "append-custody",
			Usage: "Record a custody event for registered evidence",
			Flags: []cli.Flag{
				evidenceIDFlag(),
				&cli.StringFlag{
					Name:     "action",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Action type (e.g., ACCESS, TRANSFER, ANALYSIS_STARTED, TOMBSTONE)",
				},
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "file",
					Usage:   "Evidence type: file, email or memory_dump",
				},
				handlerFlag(),
				locationFlag(),
				&cli.StringFlag{
					Name:  "hash-after",
					Usage: "SHA-256 of the evidence after the action (omit to carry the last hash forward)",
				},
				&cli.StringFlag{
					Name:  "notes",
					Usage: "Free-form notes",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				custodyUseCase, err := container.CustodyUseCase()
				if err != nil {
					return err
				}

				return commands.RunAppendCustody(
					ctx,
					custodyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.AppendCustodyParams{
						EvidenceID:   cmd.Int64("evidence-id"),
						EvidenceType: cmd.String("type"),
						ActionType:   cmd.String("action"),
						Handler:      withDefault(cmd.String("handler"), cfg.DefaultHandler),
						Location:     withDefault(cmd.String("location"), cfg.DefaultLocation),
						HashAfter:    cmd.String("hash-after"),
						Notes:        cmd.String("notes"),
						Format:       cmd.String("format"),
					},
				)
			},
		},
		{
			Name:  "custody-history",
			Usage: "Show the custody chain of an evidence item",
			Flags: []cli.Flag{
				evidenceIDFlag(),
				&cli.StringFlag{
					Name:  "order",
					Value: "desc",
					Usage: "Sort order: 'asc' or 'desc'",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				custodyUseCase, err := container.CustodyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCustodyHistory(
					ctx,
					custodyUseCase,
					commands.DefaultIO().Writer,
					cmd.Int64("evidence-id"),
					cmd.String("order"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-chain",
			Usage: "Verify the hash links of one custody chain",
			Flags: []cli.Flag{
				evidenceIDFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				custodyUseCase, err := container.CustodyUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyChain(
					ctx,
					custodyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("evidence-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-integrity",
			Usage: "Compare current evidence content with the last recorded hash",
			Flags: []cli.Flag{
				evidenceIDFlag(),
				&cli.StringFlag{
					Name:  "file",
					Usage: "Evidence file to hash",
				},
				&cli.StringFlag{
					Name:  "hash",
					Usage: "Precomputed SHA-256 of the evidence",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				custodyUseCase, err := container.CustodyUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyIntegrity(
					ctx,
					custodyUseCase,
					container.ContentHasher(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("evidence-id"),
					cmd.String("file"),
					cmd.String("hash"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-custody",
			Usage: "Verify every custody chain; exits non-zero when any chain is broken",
			Flags: []cli.Flag{
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				custodyUseCase, err := container.CustodyUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyCustody(
					ctx,
					custodyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
