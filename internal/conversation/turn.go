// Package conversation holds the chat state machine: an append-only log of turns,
// the single in-flight responder request, and the viewport autoscroll mode.
package conversation

// Role tags who authored a turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one message in the conversation. Turns are never mutated after append.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Token identifies an outstanding responder request. Zero means none.
type Token uint64

// Request is what the widget must send to the responder after an accepted submit.
type Request struct {
	Token Token
	Text  string
}
