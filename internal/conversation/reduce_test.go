package conversation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAppendsUserTurnAndGoesBusy(t *testing.T) {
	s := New()

	next, eff := Reduce(s, Submit{Text: "What is face yoga?"})

	require.True(t, eff.Changed)
	require.NotNil(t, eff.Send)
	assert.Equal(t, "What is face yoga?", eff.Send.Text)
	assert.Equal(t, next.InFlight(), eff.Send.Token)
	assert.True(t, eff.ScrollToBottom)
	assert.True(t, next.Busy())
	assert.Equal(t, []Turn{{Role: RoleUser, Content: "What is face yoga?"}}, next.Turns())

	// the input snapshot is untouched
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Busy())
}

func TestSubmitBlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		next, eff := Reduce(New(), Submit{Text: text})
		assert.False(t, eff.Changed, "text %q", text)
		assert.Nil(t, eff.Send)
		assert.Equal(t, 0, next.Len())
		assert.False(t, next.Busy())
	}
}

func TestSubmitWhileBusyIsNoop(t *testing.T) {
	s, _ := Reduce(New(), Submit{Text: "first"})

	next, eff := Reduce(s, Submit{Text: "second"})

	assert.False(t, eff.Changed)
	assert.Nil(t, eff.Send)
	assert.Equal(t, s.Turns(), next.Turns())
	assert.Equal(t, s.InFlight(), next.InFlight())
}

func TestReplyScenario(t *testing.T) {
	s, eff := Reduce(New(), Submit{Text: "What is face yoga?"})
	require.NotNil(t, eff.Send)

	s, eff = Reduce(s, Reply{Token: eff.Send.Token, Content: "Face yoga is..."})

	assert.True(t, eff.Changed)
	assert.True(t, eff.ScrollToBottom)
	assert.False(t, s.Busy())
	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "What is face yoga?"},
		{Role: RoleBot, Content: "Face yoga is..."},
	}, s.Turns())
}

func TestFailureReleasesBusyWithoutBotTurn(t *testing.T) {
	s, eff := Reduce(New(), Submit{Text: "hello"})

	s, fx := Reduce(s, Failure{Token: eff.Send.Token, Err: errors.New("connection refused")})

	assert.True(t, fx.Changed)
	assert.False(t, s.Busy())
	assert.Equal(t, []Turn{{Role: RoleUser, Content: "hello"}}, s.Turns())

	// the user can try again
	s, eff = Reduce(s, Submit{Text: "hello"})
	require.NotNil(t, eff.Send)
	assert.Equal(t, 2, s.Len())
}

func TestStaleTokensAreIgnored(t *testing.T) {
	s, first := Reduce(New(), Submit{Text: "one"})
	s, _ = Reduce(s, Failure{Token: first.Send.Token})
	s, second := Reduce(s, Submit{Text: "two"})
	require.NotEqual(t, first.Send.Token, second.Send.Token)

	next, eff := Reduce(s, Reply{Token: first.Send.Token, Content: "late"})
	assert.False(t, eff.Changed)
	assert.True(t, next.Busy())
	assert.Equal(t, 2, next.Len())

	next, eff = Reduce(s, Failure{Token: 0})
	assert.False(t, eff.Changed)
	assert.True(t, next.Busy())
}

func TestReplyWhenIdleIsIgnored(t *testing.T) {
	next, eff := Reduce(New(), Reply{Token: 1, Content: "unsolicited"})
	assert.False(t, eff.Changed)
	assert.Equal(t, 0, next.Len())
}

func TestScrollPinsAndUnpins(t *testing.T) {
	s := New(WithScrollThreshold(2))

	s, eff := Reduce(s, Scroll{DistanceFromBottom: 2})
	assert.False(t, eff.Changed)
	assert.True(t, s.Following())

	s, eff = Reduce(s, Scroll{DistanceFromBottom: 3})
	assert.True(t, eff.ModeChanged)
	assert.Equal(t, Pinned, s.ScrollMode())

	s, eff = Reduce(s, Scroll{DistanceFromBottom: 0})
	assert.True(t, eff.ModeChanged)
	assert.True(t, s.Following())
}

func TestPinnedSubmitDoesNotScroll(t *testing.T) {
	s, _ := Reduce(New(), Scroll{DistanceFromBottom: 40})

	_, eff := Reduce(s, Submit{Text: "hi"})

	require.NotNil(t, eff.Send)
	assert.False(t, eff.ScrollToBottom)
}

func TestReplyReturnsPinnedToFollowing(t *testing.T) {
	s, eff := Reduce(New(), Submit{Text: "What is face yoga?"})
	s, _ = Reduce(s, Scroll{DistanceFromBottom: 40})
	require.Equal(t, Pinned, s.ScrollMode())

	s, fx := Reduce(s, Reply{Token: eff.Send.Token, Content: "Face yoga is..."})

	assert.True(t, fx.ModeChanged)
	assert.True(t, fx.ScrollToBottom)
	assert.True(t, s.Following())
}

func TestFailureKeepsPinned(t *testing.T) {
	s, eff := Reduce(New(), Submit{Text: "q"})
	s, _ = Reduce(s, Scroll{DistanceFromBottom: 40})

	s, _ = Reduce(s, Failure{Token: eff.Send.Token})

	assert.Equal(t, Pinned, s.ScrollMode())
}

func TestTurnsAreNotSharedBetweenSnapshots(t *testing.T) {
	s, eff := Reduce(New(), Submit{Text: "a"})
	s, _ = Reduce(s, Reply{Token: eff.Send.Token, Content: "b"})

	s1, e1 := Reduce(s, Submit{Text: "c"})
	_, _ = Reduce(s1, Reply{Token: e1.Send.Token, Content: "d"})
	s2, _ := Reduce(s, Submit{Text: "x"})

	assert.Equal(t, "c", s1.Turns()[2].Content)
	assert.Equal(t, "x", s2.Turns()[2].Content)

	turns := s.Turns()
	turns[0].Content = "mutated"
	assert.Equal(t, "a", s.Turns()[0].Content)
}

func TestSuggestionPickRoutesThroughSubmit(t *testing.T) {
	sugg := Suggestions(DefaultSuggestions)

	ev, ok := sugg.Pick(0)
	require.True(t, ok)

	picked, eff := Reduce(New(), ev)
	typed, _ := Reduce(New(), Submit{Text: "Who is Savina Atai?"})

	require.NotNil(t, eff.Send)
	assert.Equal(t, typed.Turns(), picked.Turns())
	assert.Equal(t, typed.Busy(), picked.Busy())

	_, ok = sugg.Pick(3)
	assert.False(t, ok)
	_, ok = sugg.Pick(-1)
	assert.False(t, ok)
}

func TestSuggestionWhileBusyIsNoop(t *testing.T) {
	s, _ := Reduce(New(), Submit{Text: "first"})
	ev, _ := Suggestions(DefaultSuggestions).Pick(1)

	next, eff := Reduce(s, ev)

	assert.False(t, eff.Changed)
	assert.Equal(t, 1, next.Len())
}
