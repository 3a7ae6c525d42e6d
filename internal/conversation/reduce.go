package conversation

// Event is an input to the conversation state machine.
type Event interface {
	isEvent()
}

// Submit is the user sending text, whether typed or picked from a suggestion.
type Submit struct {
	Text string
}

// Reply is a successful responder answer for the request identified by Token.
type Reply struct {
	Token   Token
	Content string
}

// Failure is a failed responder exchange for the request identified by Token.
type Failure struct {
	Token Token
	Err   error
}

// Scroll reports where the viewport sits after the user scrolled it.
type Scroll struct {
	DistanceFromBottom int
}

func (Submit) isEvent()  {}
func (Reply) isEvent()   {}
func (Failure) isEvent() {}
func (Scroll) isEvent()  {}

// Effect describes what the caller must do after a transition.
type Effect struct {
	// Changed is true when the state differs from the input state.
	Changed bool
	// Send is the request to hand to the responder, if any.
	Send *Request
	// ScrollToBottom asks the viewport to show the newest turn.
	ScrollToBottom bool
	// ModeChanged is true when the autoscroll mode flipped.
	ModeChanged bool
}

// Reduce applies e to s. It is pure: s itself is left untouched.
func Reduce(s State, e Event) (State, Effect) {
	switch e := e.(type) {
	case Submit:
		return reduceSubmit(s, e)
	case Reply:
		return reduceReply(s, e)
	case Failure:
		return reduceFailure(s, e)
	case Scroll:
		return reduceScroll(s, e)
	default:
		return s, Effect{}
	}
}

func reduceSubmit(s State, e Submit) (State, Effect) {
	if !s.CanSubmit(e.Text) {
		return s, Effect{}
	}
	next := s.appendTurn(Turn{Role: RoleUser, Content: e.Text})
	next.lastToken++
	next.inFlight = next.lastToken
	return next, Effect{
		Changed:        true,
		Send:           &Request{Token: next.inFlight, Text: e.Text},
		ScrollToBottom: next.Following(),
	}
}

func reduceReply(s State, e Reply) (State, Effect) {
	if e.Token == 0 || e.Token != s.inFlight {
		return s, Effect{}
	}
	next := s.appendTurn(Turn{Role: RoleBot, Content: e.Content})
	next.inFlight = 0
	next.mode = Following
	return next, Effect{
		Changed:        true,
		ScrollToBottom: true,
		ModeChanged:    s.mode != Following,
	}
}

func reduceFailure(s State, e Failure) (State, Effect) {
	if e.Token == 0 || e.Token != s.inFlight {
		return s, Effect{}
	}
	s.inFlight = 0
	return s, Effect{Changed: true}
}

func reduceScroll(s State, e Scroll) (State, Effect) {
	mode := Following
	if e.DistanceFromBottom > s.threshold {
		mode = Pinned
	}
	if mode == s.mode {
		return s, Effect{}
	}
	s.mode = mode
	return s, Effect{Changed: true, ModeChanged: true}
}
