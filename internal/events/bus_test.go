package events

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	rec := &recorder{}
	bus.Subscribe(rec.handle, EventTurnAppended)

	bus.Publish(NewTypedEvent(SourceWidget, TurnPayload{Role: "user", Content: "hello"}, "conv-1"))
	bus.Publish(NewTypedEvent(SourceWidget, BusyPayload{Busy: true, Token: 1}, "conv-1"))

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, EventTurnAppended, got[0].Type)
	assert.Equal(t, "conv-1", got[0].ConversationID)
	assert.Equal(t, SourceWidget, got[0].Source)
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	rec := &recorder{}
	bus.Subscribe(rec.handle)

	bus.Publish(NewTypedEvent(SourceWidget, TurnPayload{Role: "user", Content: "hello"}, ""))
	bus.Publish(NewTypedEvent(SourceViewport, ViewportModePayload{Mode: "pinned"}, ""))

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	rec := &recorder{}
	unsubscribe := bus.Subscribe(rec.handle)
	unsubscribe()

	bus.Publish(NewTypedEvent(SourceWidget, BusyPayload{Busy: false}, ""))

	require.Eventually(t, func() bool { return len(bus.History(10)) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestBusHistory(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	for i := 0; i < 3; i++ {
		bus.Publish(NewTypedEvent(SourceWidget, TurnPayload{Role: "user", Index: i}, ""))
	}

	require.Eventually(t, func() bool { return len(bus.History(10)) == 3 }, time.Second, 5*time.Millisecond)

	history := bus.History(2)
	require.Len(t, history, 2)
	first, ok := ExtractPayload[TurnPayload](history[0])
	require.True(t, ok)
	assert.Equal(t, 1, first.Index)
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := NewBus(4)
	bus.Close()
	bus.Close()

	bus.Publish(NewTypedEvent(SourceWidget, BusyPayload{}, ""))

	assert.Empty(t, bus.History(10))
}

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 0; i < 5; i++ {
		rb.Add(NewTypedEvent(SourceWidget, TurnPayload{Index: i}, ""))
	}

	got := rb.Get(10)
	require.Len(t, got, 3)
	last, ok := ExtractPayload[TurnPayload](got[2])
	require.True(t, ok)
	assert.Equal(t, 4, last.Index)
	assert.Nil(t, rb.Get(0))
}

func TestExtractPayloadChecksType(t *testing.T) {
	e := NewTypedEvent(SourceResponder, ResponderFailedPayload{Token: 3, Kind: "timeout", Error: "slow"}, "")

	failed, ok := ExtractPayload[ResponderFailedPayload](e)
	require.True(t, ok)
	assert.Equal(t, uint64(3), failed.Token)
	assert.Equal(t, "timeout", failed.Kind)

	_, ok = ExtractPayload[TurnPayload](e)
	assert.False(t, ok)
}

func TestLogSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	handler := LogSubscriber(logger)

	handler(NewTypedEvent(SourceWidget, TurnPayload{Role: "user", Content: "hi"}, "conv"))
	assert.Empty(t, buf.String(), "turn events are debug level")

	handler(NewTypedEvent(SourceResponder, ResponderFailedPayload{Token: 1, Kind: "transport", Error: "refused"}, "conv"))
	out := buf.String()
	assert.True(t, strings.Contains(out, "level=WARN"))
	assert.Contains(t, out, "responder.failed")
	assert.Contains(t, out, "kind=transport")
	assert.Contains(t, out, "conversation_id=conv")
}

func TestBusDeliversInPublishOrder(t *testing.T) {
	bus := NewBus(128)
	defer bus.Close()

	all, turns := &recorder{}, &recorder{}
	bus.Subscribe(all.handle)
	bus.Subscribe(turns.handle, EventTurnAppended)

	for i := range 50 {
		bus.Publish(NewTypedEvent(SourceWidget, TurnPayload{Index: i}, ""))
		bus.Publish(NewTypedEvent(SourceWidget, BusyPayload{Token: uint64(i)}, ""))
	}

	require.Eventually(t, func() bool {
		return len(all.snapshot()) == 100 && len(turns.snapshot()) == 50
	}, time.Second, 5*time.Millisecond)

	for i, e := range turns.snapshot() {
		p, ok := ExtractPayload[TurnPayload](e)
		require.True(t, ok)
		assert.Equal(t, i, p.Index)
	}
	for i, e := range all.snapshot() {
		if i%2 == 0 {
			assert.Equal(t, EventTurnAppended, e.Type, "event %d", i)
		} else {
			assert.Equal(t, EventBusyChanged, e.Type, "event %d", i)
		}
	}
}

func TestBusSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	bus := NewBus(16)
	defer bus.Close()

	release := make(chan struct{})
	defer close(release)
	bus.Subscribe(func(Event) { <-release })

	fast := &recorder{}
	bus.Subscribe(fast.handle)

	for i := range 5 {
		bus.Publish(NewTypedEvent(SourceWidget, TurnPayload{Index: i}, ""))
	}

	assert.Eventually(t, func() bool { return len(fast.snapshot()) == 5 }, time.Second, 5*time.Millisecond)
}

func TestBusUnsubscribeTwiceAndAfterClose(t *testing.T) {
	bus := NewBus(4)
	unsubscribe := bus.Subscribe(func(Event) {})
	unsubscribe()
	unsubscribe()

	bus.Close()
	late := bus.Subscribe(func(Event) {})
	late()
}
