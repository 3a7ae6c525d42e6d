package tui

import (
	"time"

	"github.com/dohr-michael/chatwidget/internal/conversation"
)

// ReplyMsg carries a successful responder answer.
type ReplyMsg struct {
	Token   conversation.Token
	Content string
	Elapsed time.Duration
}

// FailureMsg carries a failed responder exchange.
type FailureMsg struct {
	Token   conversation.Token
	Err     error
	Elapsed time.Duration
}
