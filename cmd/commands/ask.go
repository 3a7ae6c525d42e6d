package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/chatwidget/clients/tui/organisms"
	"github.com/dohr-michael/chatwidget/internal/responder"
)

// NewAskCommand returns the ask subcommand.
func NewAskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Send one message to the responder and print the reply",
		ArgsUsage: "<message>",
		Flags: append(responderFlags(),
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the reply as-is, without markdown rendering",
			},
		),
		Action: runAsk,
	}
}

func runAsk(ctx context.Context, cmd *cli.Command) error {
	message := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("usage: chatwidget ask <message>")
	}

	cfg, missingConfig, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, cmd.Bool("debug"), os.Stderr)
	warnMissingConfig(logger, missingConfig)

	client := responder.NewClient(responder.Options{
		BaseURL:   cfg.Responder.BaseURL,
		Path:      cfg.Responder.Path,
		Timeout:   cfg.Responder.Timeout.Duration(),
		UserAgent: cfg.Responder.UserAgent,
		Logger:    logger,
	})

	reply, err := client.Send(ctx, message)
	if err != nil {
		logger.Warn("responder failed", "endpoint", client.URL(), "kind", responder.KindOf(err), "error", err)
		return fmt.Errorf("ask: %w", err)
	}

	if !cmd.Bool("raw") && term.IsTerminal(int(os.Stdout.Fd())) {
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		fmt.Fprint(os.Stdout, organisms.RenderMarkdown(reply, "auto", width))
		return nil
	}
	fmt.Fprintln(os.Stdout, reply)
	return nil
}
