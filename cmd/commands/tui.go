package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/chatwidget/clients/tui"
	"github.com/dohr-michael/chatwidget/internal/config"
	"github.com/dohr-michael/chatwidget/internal/events"
	"github.com/dohr-michael/chatwidget/internal/responder"
	"github.com/dohr-michael/chatwidget/internal/storage"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive chat widget",
		Flags: append(responderFlags(),
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Write diagnostic events as JSONL (turn contents redacted)",
			},
			&cli.StringFlag{
				Name:  "markdown-style",
				Usage: "Glamour style for bot replies (auto, dark, light, notty)",
				Value: "auto",
			},
		),
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	cfg, missingConfig, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to bubbletea; diagnostics go to the log file.
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	conversationID := uuid.NewString()
	logger := newLogger(cfg.Log, cmd.Bool("debug"), logFile)
	slog.SetDefault(logger)
	warnMissingConfig(logger, missingConfig)

	bus := events.NewBus(0)
	defer bus.Close()
	unsubscribe := bus.Subscribe(events.LogSubscriber(logger))
	defer unsubscribe()

	if cfg.Log.Trace || cmd.Bool("trace") {
		trace := storage.NewEventLog(config.TracesPath(), bus)
		defer trace.Close()
		logger.Info("tracing events", "file", trace.Path(conversationID))
	}

	client := responder.NewClient(responder.Options{
		BaseURL:   cfg.Responder.BaseURL,
		Path:      cfg.Responder.Path,
		Timeout:   cfg.Responder.Timeout.Duration(),
		UserAgent: cfg.Responder.UserAgent,
		Logger:    logger,
	})

	logger.Info("widget started", "conversation_id", conversationID, "endpoint", client.URL(), "timeout", cfg.Responder.Timeout.Duration())

	err = tui.Run(ctx, tui.Options{
		Sender:          client,
		Endpoint:        client.URL(),
		ConversationID:  conversationID,
		Bus:             bus,
		Logger:          logger,
		BotName:         cfg.Widget.BotName,
		Greeting:        cfg.Widget.Greeting,
		Placeholder:     cfg.Widget.Placeholder,
		Suggestions:     cfg.Widget.Suggestions,
		ScrollThreshold: *cfg.Widget.ScrollThreshold,
		MarkdownStyle:   cmd.String("markdown-style"),
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	logger.Info("widget closed")
	return nil
}
