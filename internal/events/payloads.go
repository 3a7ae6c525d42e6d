package events

import (
	"encoding/json"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// TurnPayload is emitted when a turn is appended to the conversation.
type TurnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Index   int    `json:"index"`
}

func (TurnPayload) EventType() EventType { return EventTurnAppended }

// BusyPayload is emitted when the in-flight guard is taken or released.
type BusyPayload struct {
	Busy  bool   `json:"busy"`
	Token uint64 `json:"token"`
}

func (BusyPayload) EventType() EventType { return EventBusyChanged }

// ResponderRequestedPayload is emitted when a message is handed to the responder.
type ResponderRequestedPayload struct {
	Token    uint64 `json:"token"`
	Endpoint string `json:"endpoint"`
}

func (ResponderRequestedPayload) EventType() EventType { return EventResponderRequested }

// ResponderFailedPayload is emitted when an exchange ends without a reply.
type ResponderFailedPayload struct {
	Token      uint64 `json:"token"`
	Kind       string `json:"kind"`
	Error      string `json:"error"`
	DurationMs int64  `json:"duration_ms"`
}

func (ResponderFailedPayload) EventType() EventType { return EventResponderFailed }

// ViewportModePayload is emitted when the autoscroll mode flips.
type ViewportModePayload struct {
	Mode string `json:"mode"`
}

func (ViewportModePayload) EventType() EventType { return EventViewportMode }

func toMap(v any) map[string]any {
	var result map[string]any
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// ExtractPayload decodes the event payload into T.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var result T
	if e.Type != result.EventType() {
		return result, false
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}
