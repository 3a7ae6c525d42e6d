package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/chatwidget/internal/config"
)

// responderFlags override the responder section of the config.
func responderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "Responder base URL",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "Responder route",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Bound on a single responder exchange",
		},
	}
}

// loadConfig reads the config named by --config, falling back to defaults when
// the file does not exist. missing is the path that was not found, empty when
// the file was read.
func loadConfig(cmd *cli.Command) (cfg *config.Config, missing string, err error) {
	path := cmd.String("config")
	cfg, err = config.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", err
		}
		cfg, missing = config.Default(), path
	}

	if cmd.IsSet("url") {
		cfg.Responder.BaseURL = strings.TrimRight(cmd.String("url"), "/")
	}
	if cmd.IsSet("path") {
		cfg.Responder.Path = "/" + strings.TrimPrefix(cmd.String("path"), "/")
	}
	if cmd.IsSet("timeout") {
		cfg.Responder.Timeout = config.Duration(cmd.Duration("timeout"))
	}
	return cfg, missing, nil
}

// warnMissingConfig reports a config file that was not found. Call it after the
// command's logger is built.
func warnMissingConfig(logger *slog.Logger, missing string) {
	if missing != "" {
		logger.Warn("config not found, using defaults", "path", missing)
	}
}

// newLogger builds the slog logger described by cfg, writing to w.
func newLogger(cfg config.LogConfig, debug bool, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile opens the diagnostics log in append mode.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
