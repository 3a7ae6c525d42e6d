package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StubOptions configures a StubServer.
type StubOptions struct {
	Host    string
	Port    int
	Path    string
	Delay   time.Duration
	Reply   string            // fallback reply
	Answers map[string]string // question -> reply, matched case-insensitively
	Logger  *slog.Logger
}

// StubServer is a local stand-in for the responder. It answers every message after
// a fixed delay with a canned reply.
type StubServer struct {
	httpServer *http.Server
	path       string
	delay      time.Duration
	reply      string
	answers    map[string]string
	logger     *slog.Logger
	served     atomic.Int64
}

// NewStubServer creates a stub responder.
func NewStubServer(opts StubOptions) *StubServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	path := opts.Path
	if path == "" {
		path = "/getResponse"
	}

	s := &StubServer{
		path:    path,
		delay:   opts.Delay,
		reply:   opts.Reply,
		answers: make(map[string]string, len(opts.Answers)),
		logger:  logger,
	}
	for q, a := range opts.Answers {
		s.answers[normalizeQuestion(q)] = a
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Get("/api/health", s.handleHealth)
	r.Post(path, s.handleMessage)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *StubServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *StubServer) Addr() string { return s.httpServer.Addr }

// Path returns the route answering messages.
func (s *StubServer) Path() string { return s.path }

// Served returns the number of replies sent so far.
func (s *StubServer) Served() int64 { return s.served.Load() }

// Start begins listening. It blocks until the server is stopped.
func (s *StubServer) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("stub responder listening", "addr", ln.Addr().String(), "path", s.path, "delay", s.delay)
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *StubServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *StubServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "served": s.served.Load()})
}

func (s *StubServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReplyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	reply := s.answerFor(req.Message)
	s.served.Add(1)
	s.logger.Debug("stub reply",
		"request_id", middleware.GetReqID(r.Context()),
		"message", req.Message,
	)
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func (s *StubServer) answerFor(message string) string {
	if a, ok := s.answers[normalizeQuestion(message)]; ok {
		return a
	}
	return s.reply
}

func normalizeQuestion(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HealthStatus is the body returned by the stub's health route.
type HealthStatus struct {
	Status string `json:"status"`
	Served int64  `json:"served"`
}

// CheckStub queries the health route of a stub responder at baseURL.
func CheckStub(ctx context.Context, hc *http.Client, baseURL string) (HealthStatus, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/api/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("check stub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("check stub: status %d", resp.StatusCode)
	}
	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health: %w", err)
	}
	return hs, nil
}
