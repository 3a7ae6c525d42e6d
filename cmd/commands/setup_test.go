package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/chatwidget/internal/config"
)

func runLoadConfig(t *testing.T, args ...string) (*config.Config, string, error) {
	t.Helper()
	var (
		cfg     *config.Config
		missing string
		err     error
	)
	cmd := &cli.Command{
		Name: "test",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "config"},
		}, responderFlags()...),
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, missing, err = loadConfig(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return cfg, missing, err
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.jsonc")
	cfg, missing, err := runLoadConfig(t, "--config", path)

	require.NoError(t, err)
	assert.Equal(t, path, missing)
	assert.Equal(t, config.DefaultResponderURL, cfg.Responder.BaseURL)
	assert.Equal(t, config.DefaultResponderPath, cfg.Responder.Path)
	assert.Equal(t, config.DefaultTimeout, cfg.Responder.Timeout.Duration())
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// remote bot
		"responder": {"base_url": "http://bot.example", "path": "/getResponse", "timeout": "5s"},
	}`), 0o644))

	cfg, missing, err := runLoadConfig(t, "--config", path, "--url", "http://localhost:8080/", "--path", "ask", "--timeout", "2s")

	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Equal(t, "http://localhost:8080", cfg.Responder.BaseURL)
	assert.Equal(t, "/ask", cfg.Responder.Path)
	assert.Equal(t, 2*time.Second, cfg.Responder.Timeout.Duration())
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"responder": `), 0o644))

	_, _, err := runLoadConfig(t, "--config", path)

	assert.Error(t, err)
}

func TestMissingConfigWarnsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "warn"}, false, &buf)

	warnMissingConfig(logger, "")
	assert.Empty(t, buf.String())

	warnMissingConfig(logger, "/tmp/nope.jsonc")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "config not found, using defaults")
	assert.Contains(t, buf.String(), "path=/tmp/nope.jsonc")
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(config.LogConfig{Level: "warn"}, false, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger = newLogger(config.LogConfig{Level: "warn"}, true, &buf)
	logger.Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")

	buf.Reset()
	logger = newLogger(config.LogConfig{Level: "bogus"}, false, &buf)
	logger.Debug("nope")
	logger.Info("default")
	assert.NotContains(t, buf.String(), "nope")
	assert.Contains(t, buf.String(), "default")
}

func TestOpenLogFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chatwidget.log")

	f, err := openLogFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
