// Package responder talks to the remote bot endpoint: one POST per user message,
// one reply per POST, no conversation history.
package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds a single exchange when Options.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	maxReplyBytes = 1 << 20
	maxBodyInErr  = 200
)

// Sender produces a bot reply for a piece of user text.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Request is the JSON body posted to the responder.
type Request struct {
	Message string `json:"message"`
}

// Response is the JSON body the responder answers with.
type Response struct {
	Response *string `json:"response"`
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Path       string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is an HTTP client for the responder endpoint.
type Client struct {
	url        string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a responder client for BaseURL+Path.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:        strings.TrimRight(opts.BaseURL, "/") + opts.Path,
		timeout:    timeout,
		userAgent:  opts.UserAgent,
		httpClient: hc,
		logger:     logger,
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Send posts text to the responder and returns its reply. Failures are returned as
// *Error and always match ErrUnavailable.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(Request{Message: text})
	if err != nil {
		return "", &Error{Kind: KindMalformed, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", c.transportError(ctx, fmt.Errorf("read reply: %w", err))
	}

	c.logger.Debug("responder exchange",
		"request_id", reqID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Kind: KindStatus, StatusCode: resp.StatusCode, Body: snippet(data)}
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &Error{Kind: KindMalformed, Body: snippet(data), Err: err}
	}
	if out.Response == nil {
		return "", &Error{Kind: KindMalformed, Body: snippet(data), Err: errors.New(`missing "response" field`)}
	}
	return *out.Response, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

// snippet shortens a reply body for error messages, cutting on a rune boundary.
func snippet(b []byte) string {
	s := strings.ToValidUTF8(strings.TrimSpace(string(b)), "\uFFFD")
	if len(s) <= maxBodyInErr {
		return s
	}
	cut := maxBodyInErr - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
