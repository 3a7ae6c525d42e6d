package conversation

import (
	"strings"
)

// ScrollMode is the autoscroll policy state.
type ScrollMode int

const (
	Following ScrollMode = iota // scroll to the newest turn on every change
	Pinned                      // user scrolled away; leave the viewport alone
)

func (m ScrollMode) String() string {
	if m == Pinned {
		return "pinned"
	}
	return "following"
}

// DefaultScrollThreshold is how far (in lines) the viewport may sit above the
// bottom and still count as "at the bottom".
const DefaultScrollThreshold = 1

// State is an immutable snapshot of a conversation. Transitions return a new State
// and never touch the turns visible through an older one.
type State struct {
	turns     []Turn
	inFlight  Token
	lastToken Token
	mode      ScrollMode
	threshold int
}

// Option configures a new State.
type Option func(*State)

// WithScrollThreshold sets the bottom distance tolerated before switching to Pinned.
func WithScrollThreshold(lines int) Option {
	return func(s *State) {
		if lines >= 0 {
			s.threshold = lines
		}
	}
}

// New returns an empty conversation in Following mode.
func New(opts ...Option) State {
	s := State{mode: Following, threshold: DefaultScrollThreshold}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Turns returns a copy of the turn log in conversation order.
func (s State) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s State) Len() int { return len(s.turns) }

// Last returns the newest turn.
func (s State) Last() (Turn, bool) {
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// Busy reports whether a responder request is outstanding.
func (s State) Busy() bool { return s.inFlight != 0 }

// InFlight returns the token of the outstanding request, or zero.
func (s State) InFlight() Token { return s.inFlight }

// ScrollMode returns the current autoscroll mode.
func (s State) ScrollMode() ScrollMode { return s.mode }

// Following reports whether new turns should be scrolled into view.
func (s State) Following() bool { return s.mode == Following }

// Threshold returns the scroll threshold in lines.
func (s State) Threshold() int { return s.threshold }

// CanSubmit reports whether Submit{text} would be accepted.
func (s State) CanSubmit(text string) bool {
	return !s.Busy() && strings.TrimSpace(text) != ""
}

func (s State) appendTurn(t Turn) State {
	turns := make([]Turn, len(s.turns), len(s.turns)+1)
	copy(turns, s.turns)
	s.turns = append(turns, t)
	return s
}
