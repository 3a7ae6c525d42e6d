package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/chatwidget/internal/conversation"
)

const (
	DefaultResponderURL  = "http://localhost:5000"
	DefaultResponderPath = "/getResponse"
	DefaultTimeout       = 30 * time.Second
	DefaultStubDelay     = time.Second
	DefaultStubReply     = "Bot response..."
	DefaultGreeting      = "👋 Hi! I'm SavinaAtaiBot, an AI chatbot trained on face yoga. Ask me everything you want!"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC (or YAML, by extension) config file, expands ${{ .Env.VAR }}
// templates, unmarshals it into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Templates live inside string values, so expand before parsing.
	expanded := []byte(expandEnvTemplates(string(data)))

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	default:
		std, err := hujson.Standardize(expanded)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Responder.BaseURL == "" {
		if v := os.Getenv("CHATWIDGET_RESPONDER_URL"); v != "" {
			cfg.Responder.BaseURL = v
		} else {
			cfg.Responder.BaseURL = DefaultResponderURL
		}
	}
	cfg.Responder.BaseURL = strings.TrimRight(cfg.Responder.BaseURL, "/")
	if cfg.Responder.Path == "" {
		cfg.Responder.Path = DefaultResponderPath
	}
	if !strings.HasPrefix(cfg.Responder.Path, "/") {
		cfg.Responder.Path = "/" + cfg.Responder.Path
	}
	if cfg.Responder.Timeout <= 0 {
		cfg.Responder.Timeout = Duration(DefaultTimeout)
	}

	if cfg.Widget.BotName == "" {
		cfg.Widget.BotName = "Bot"
	}
	if cfg.Widget.Greeting == "" {
		cfg.Widget.Greeting = DefaultGreeting
	}
	if len(cfg.Widget.Suggestions) == 0 {
		cfg.Widget.Suggestions = append([]string(nil), conversation.DefaultSuggestions...)
	}
	if cfg.Widget.Placeholder == "" {
		cfg.Widget.Placeholder = "Write your message"
	}
	if cfg.Widget.ScrollThreshold == nil {
		n := conversation.DefaultScrollThreshold
		cfg.Widget.ScrollThreshold = &n
	}

	if cfg.Stub.Host == "" {
		cfg.Stub.Host = "127.0.0.1"
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = 5000
	}
	if cfg.Stub.Delay <= 0 {
		cfg.Stub.Delay = Duration(DefaultStubDelay)
	}
	if cfg.Stub.Reply == "" {
		cfg.Stub.Reply = DefaultStubReply
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = LogPath()
	}
}
