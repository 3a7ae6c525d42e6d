// Package events provides an in-memory diagnostic event bus for the conversation widget.
package events

import (
	"fmt"
	"sync/atomic"
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Conversation state
	EventTurnAppended EventType = "conversation.turn"
	EventBusyChanged  EventType = "conversation.busy"

	// Responder exchanges
	EventResponderRequested EventType = "responder.requested"
	EventResponderFailed    EventType = "responder.failed"

	// Viewport autoscroll
	EventViewportMode EventType = "viewport.mode"
)

// EventSource identifies the component that emitted an event.
type EventSource string

const (
	SourceWidget    EventSource = "widget"
	SourceResponder EventSource = "responder"
	SourceViewport  EventSource = "viewport"
)

// Event represents an event in the system.
type Event struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id,omitempty"`
	Type           EventType      `json:"type"`
	Timestamp      time.Time      `json:"timestamp"`
	Source         EventSource    `json:"source"`
	Payload        map[string]any `json:"payload"`
}

var eventIDCounter uint64

// NewTypedEvent creates an event from a typed payload.
func NewTypedEvent(source EventSource, payload EventPayload, conversationID string) Event {
	return Event{
		ID:             generateEventID(),
		ConversationID: conversationID,
		Type:           payload.EventType(),
		Timestamp:      time.Now(),
		Source:         source,
		Payload:        toMap(payload),
	}
}

func generateEventID() string {
	seq := atomic.AddUint64(&eventIDCounter, 1)
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq)
}
