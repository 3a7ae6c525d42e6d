package events

import (
	"context"
	"log/slog"
)

// LogSubscriber returns a Subscriber that writes each event to logger.
// Responder failures are logged at warn level, everything else at debug.
func LogSubscriber(logger *slog.Logger) Subscriber {
	return func(e Event) {
		level := slog.LevelDebug
		if e.Type == EventResponderFailed {
			level = slog.LevelWarn
		}
		attrs := []any{
			"event_id", e.ID,
			"source", string(e.Source),
		}
		if e.ConversationID != "" {
			attrs = append(attrs, "conversation_id", e.ConversationID)
		}
		for k, v := range e.Payload {
			attrs = append(attrs, k, v)
		}
		logger.Log(context.Background(), level, string(e.Type), attrs...)
	}
}
