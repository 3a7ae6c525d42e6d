package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/chatwidget/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "chatwidget",
		Usage: "Terminal chat widget for a remote question-answering bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTUICommand(),
			NewAskCommand(),
			NewStubCommand(),
			NewStatusCommand(),
		},
	}
}
