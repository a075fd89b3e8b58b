package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getEvidenceCommands()...)
	cmds = append(cmds, getCustodyCommands()...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func evidenceIDFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "evidence-id",
		Aliases:  []string{"e"},
		Required: true,
		Usage:    "Evidence ID",
	}
}

func handlerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "handler",
		Usage: "Person or system performing the action (defaults to DEFAULT_HANDLER)",
	}
}

func locationFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "location",
		Usage: "Where the action happened (defaults to DEFAULT_LOCATION)",
	}
}

// withDefault returns value, or fallback when value is empty.
func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
