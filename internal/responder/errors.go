package responder

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every failed exchange with the responder.
var ErrUnavailable = errors.New("responder unavailable")

// Sentinels for the individual failure kinds. An *Error matches its own kind and
// ErrUnavailable.
var (
	ErrNoReply        = errors.New("no reply received")
	ErrBadStatus      = errors.New("unexpected status")
	ErrMalformedReply = errors.New("malformed reply")
	ErrTimeout        = errors.New("reply timed out")
)

// Kind classifies a responder failure.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindMalformed Kind = "malformed"
	KindTimeout   Kind = "timeout"
)

func (k Kind) sentinel() error {
	switch k {
	case KindStatus:
		return ErrBadStatus
	case KindMalformed:
		return ErrMalformedReply
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrNoReply
	}
}

// Error is a failed exchange with the responder.
type Error struct {
	Kind       Kind
	StatusCode int    // set for KindStatus
	Body       string // truncated response body, set for KindStatus and KindMalformed
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("responder: status %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("responder: status %d", e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("responder: %s: %v", e.Kind.sentinel(), e.Err)
		}
		return "responder: " + e.Kind.sentinel().Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match ErrUnavailable and the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == ErrUnavailable || target == e.Kind.sentinel()
}

// KindOf returns the failure kind of err, or "" when err is not a responder error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
