// Package heartbeat records that a stub responder is running so other
// chatwidget processes can find it.
package heartbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultInterval is how often the heartbeat file is refreshed.
const DefaultInterval = 10 * time.Second

// Status is the liveness state read back from a heartbeat file.
type Status string

const (
	StatusAlive Status = "alive"
	StatusStale Status = "stale"
	StatusDead  Status = "dead"
)

// Heartbeat is the content of the heartbeat file.
type Heartbeat struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	Endpoint  string    `json:"endpoint"`
	Served    int64     `json:"served"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Writer periodically rewrites a heartbeat file until stopped.
type Writer struct {
	path     string
	addr     string
	endpoint string
	interval time.Duration
	served   func() int64

	mu      sync.Mutex
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Writer.
type Option func(*Writer)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(w *Writer) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithServed reports a request counter in each heartbeat.
func WithServed(fn func() int64) Option {
	return func(w *Writer) { w.served = fn }
}

// NewWriter creates a writer for the server listening on addr and answering at endpoint.
func NewWriter(path, addr, endpoint string, opts ...Option) *Writer {
	w := &Writer{
		path:     path,
		addr:     addr,
		endpoint: endpoint,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start writes the first heartbeat synchronously, then refreshes it in the background.
func (w *Writer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return nil
	}

	w.started = time.Now()
	if err := w.write(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_ = w.write()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop halts the refresh loop and removes the file.
func (w *Writer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel == nil {
		return
	}

	w.cancel()
	<-w.done
	w.cancel = nil

	_ = os.Remove(w.path)
}

func (w *Writer) write() error {
	hb := Heartbeat{
		PID:       os.Getpid(),
		Addr:      w.addr,
		Endpoint:  w.endpoint,
		StartedAt: w.started,
		Timestamp: time.Now(),
		Uptime:    time.Since(w.started).Truncate(time.Second).String(),
	}
	if w.served != nil {
		hb.Served = w.served()
	}

	data, err := json.MarshalIndent(hb, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal heartbeat: %w", err)
	}

	// tmp + rename so readers never see a partial file
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	return nil
}

// Check reads the heartbeat at path. A heartbeat older than maxAge is stale;
// a missing file means dead.
func Check(path string, maxAge time.Duration) (Status, *Heartbeat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusDead, nil, nil
		}
		return StatusDead, nil, fmt.Errorf("read heartbeat: %w", err)
	}

	var hb Heartbeat
	if err := json.Unmarshal(data, &hb); err != nil {
		return StatusDead, nil, fmt.Errorf("unmarshal heartbeat: %w", err)
	}

	if time.Since(hb.Timestamp) > maxAge {
		return StatusStale, &hb, nil
	}
	return StatusAlive, &hb, nil
}
