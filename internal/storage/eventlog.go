// Package storage writes diagnostic traces of a widget run to disk.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dohr-michael/chatwidget/internal/events"
)

// EventLog appends bus events as JSONL, one file per conversation.
// Turn contents are replaced by their length: the trace records what happened,
// never what was said.
type EventLog struct {
	dir         string
	unsubscribe func()
}

// NewEventLog subscribes to every event on bus and writes them under dir.
func NewEventLog(dir string, bus *events.Bus) *EventLog {
	el := &EventLog{dir: dir}
	el.unsubscribe = bus.Subscribe(el.handleEvent)
	return el
}

// Close unsubscribes the log from the bus.
func (el *EventLog) Close() {
	if el.unsubscribe != nil {
		el.unsubscribe()
	}
}

// Path returns the trace file of a conversation.
func (el *EventLog) Path(conversationID string) string {
	if conversationID == "" {
		return filepath.Join(el.dir, "_global.jsonl")
	}
	return filepath.Join(el.dir, conversationID+".jsonl")
}

func (el *EventLog) handleEvent(e events.Event) {
	_ = el.writeEvent(redact(e))
}

func redact(e events.Event) events.Event {
	if e.Type != events.EventTurnAppended {
		return e
	}
	payload := make(map[string]any, len(e.Payload))
	for k, v := range e.Payload {
		payload[k] = v
	}
	if content, ok := payload["content"].(string); ok {
		delete(payload, "content")
		payload["content_len"] = len(content)
	}
	e.Payload = payload
	return e
}

func (el *EventLog) writeEvent(e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	path := el.Path(e.ConversationID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}
