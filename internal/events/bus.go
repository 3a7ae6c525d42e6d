package events

import (
	"sync"
)

// Subscriber is a function that receives events.
type Subscriber func(Event)

// mailbox delivers the events one subscriber asked for, in publish order, from a
// goroutine of its own so a slow subscriber never holds up the others.
type mailbox struct {
	types   map[EventType]struct{} // nil = every type
	inbox   chan Event
	handler Subscriber
}

func newMailbox(handler Subscriber, size int, types []EventType) *mailbox {
	m := &mailbox{
		inbox:   make(chan Event, size),
		handler: handler,
	}
	if len(types) > 0 {
		m.types = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			m.types[t] = struct{}{}
		}
	}
	go m.run()
	return m
}

func (m *mailbox) wants(t EventType) bool {
	if m.types == nil {
		return true
	}
	_, ok := m.types[t]
	return ok
}

func (m *mailbox) run() {
	for e := range m.inbox {
		m.handler(e)
	}
}

// Bus is an in-memory event bus. Publishing never blocks the caller: an event is
// dropped when the bus queue or a subscriber's mailbox is full. Each subscriber sees
// the events it receives in the order they were published.
type Bus struct {
	mu      sync.RWMutex
	size    int
	mboxes  map[uint64]*mailbox
	nextID  uint64
	queue   chan Event
	history *RingBuffer
	closed  bool
	stop    chan struct{}
}

// NewBus creates a bus whose queue, mailboxes and history hold bufferSize events
// (256 when bufferSize <= 0).
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	b := &Bus{
		size:    bufferSize,
		mboxes:  make(map[uint64]*mailbox),
		queue:   make(chan Event, bufferSize),
		history: NewRingBuffer(bufferSize),
		stop:    make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	for {
		select {
		case e := <-b.queue:
			b.history.Add(e)
			b.deliver(e)
		case <-b.stop:
			return
		}
	}
}

func (b *Bus) deliver(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, m := range b.mboxes {
		if !m.wants(e.Type) {
			continue
		}
		select {
		case m.inbox <- e:
		default:
		}
	}
}

// Publish queues an event for delivery.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	select {
	case b.queue <- event:
	default:
	}
}

// Subscribe registers a handler for specific event types (all types when none given).
// Returns an unsubscribe function; calling it more than once is harmless.
func (b *Bus) Subscribe(handler Subscriber, eventTypes ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.nextID
	b.nextID++
	b.mboxes[id] = newMailbox(handler, b.size, eventTypes)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.remove(id)
	}
}

// remove must be called with b.mu held.
func (b *Bus) remove(id uint64) {
	m, ok := b.mboxes[id]
	if !ok {
		return
	}
	delete(b.mboxes, id)
	close(m.inbox)
}

// History returns recent events, oldest first.
func (b *Bus) History(limit int) []Event {
	return b.history.Get(limit)
}

// Close stops delivery. Subscribers finish the events already in their mailbox;
// later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.stop)
	for id := range b.mboxes {
		b.remove(id)
	}
}

// RingBuffer keeps the last N events.
type RingBuffer struct {
	mu   sync.Mutex
	buf  []Event
	next int
	full bool
}

// NewRingBuffer creates a buffer holding size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = 1
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Add stores event, evicting the oldest one when full.
func (r *RingBuffer) Add(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = event
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Get returns up to n of the newest events, oldest first.
func (r *RingBuffer) Get(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.next
	if r.full {
		stored = len(r.buf)
	}
	n = min(n, stored)
	if n <= 0 {
		return nil
	}

	out := make([]Event, 0, n)
	for i := r.next - n; i < r.next; i++ {
		out = append(out, r.buf[(i+len(r.buf))%len(r.buf)])
	}
	return out
}
