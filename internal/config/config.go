// Package config loads the chat widget configuration.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the chat widget.
type Config struct {
	Responder ResponderConfig `json:"responder" yaml:"responder"`
	Widget    WidgetConfig    `json:"widget" yaml:"widget"`
	Stub      StubConfig      `json:"stub" yaml:"stub"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// ResponderConfig points at the remote bot endpoint.
type ResponderConfig struct {
	BaseURL   string   `json:"base_url" yaml:"base_url"`
	Path      string   `json:"path" yaml:"path"`
	Timeout   Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// URL returns the full endpoint address.
func (r ResponderConfig) URL() string {
	return r.BaseURL + r.Path
}

// WidgetConfig holds the presentation settings of the conversation widget.
type WidgetConfig struct {
	BotName         string   `json:"bot_name" yaml:"bot_name"`
	Greeting        string   `json:"greeting" yaml:"greeting"`
	Suggestions     []string `json:"suggestions" yaml:"suggestions"`
	Placeholder     string   `json:"placeholder" yaml:"placeholder"`
	ScrollThreshold *int     `json:"scroll_threshold,omitempty" yaml:"scroll_threshold,omitempty"` // lines
}

// StubConfig configures the local stand-in responder.
type StubConfig struct {
	Host    string            `json:"host" yaml:"host"`
	Port    int               `json:"port" yaml:"port"`
	Delay   Duration          `json:"delay,omitempty" yaml:"delay,omitempty"`
	Reply   string            `json:"reply" yaml:"reply"`
	Answers map[string]string `json:"answers,omitempty" yaml:"answers,omitempty"` // question -> reply
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
	Trace bool   `json:"trace,omitempty" yaml:"trace,omitempty"` // JSONL event trace under TracesPath
}

// Duration wraps time.Duration for JSON and YAML unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	dur, err := time.ParseDuration(node.Value)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}
