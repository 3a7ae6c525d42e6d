package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/chatwidget/internal/config"
	"github.com/dohr-michael/chatwidget/internal/heartbeat"
	"github.com/dohr-michael/chatwidget/internal/responder"
)

// NewStubCommand returns the stub subcommand.
func NewStubCommand() *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Run a local stand-in responder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Route answering messages",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Delay before each reply",
			},
			&cli.StringFlag{
				Name:  "reply",
				Usage: "Fallback reply for unknown questions",
			},
		},
		Action: runStub,
	}
}

func runStub(ctx context.Context, cmd *cli.Command) error {
	cfg, missingConfig, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Stub.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Stub.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("delay") {
		cfg.Stub.Delay = config.Duration(cmd.Duration("delay"))
	}
	if cmd.IsSet("reply") {
		cfg.Stub.Reply = cmd.String("reply")
	}

	logger := newLogger(cfg.Log, cmd.Bool("debug"), os.Stderr)
	warnMissingConfig(logger, missingConfig)

	server := responder.NewStubServer(responder.StubOptions{
		Host:    cfg.Stub.Host,
		Port:    cfg.Stub.Port,
		Path:    cfg.Responder.Path,
		Delay:   cfg.Stub.Delay.Duration(),
		Reply:   cfg.Stub.Reply,
		Answers: cfg.Stub.Answers,
		Logger:  logger,
	})

	if err := os.MkdirAll(config.HomePath(), 0o755); err != nil {
		return err
	}
	hb := heartbeat.NewWriter(config.StubHeartbeatPath(), server.Addr(), server.Path(), heartbeat.WithServed(server.Served))
	if err := hb.Start(); err != nil {
		logger.Warn("heartbeat disabled", "error", err)
	}
	defer hb.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("stub responder stopped", "error", err)
		return err
	}
}
