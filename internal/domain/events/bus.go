package events

import (
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// Publisher is the port simulation components raise notifications through.
type Publisher interface {
	Publish(eventType EventType, data any)
}

// Listener receives events synchronously.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}

// Bus delivers each published event to every subscribed listener, in
// subscription order, before Publish returns. Listeners must not publish
// from inside OnEvent.
//
// Bus is not safe for concurrent use; the owning engine serializes access.
type Bus struct {
	clock     shared.Clock
	nextID    uint64
	listeners []subscription
	nextSubID int
}

type subscription struct {
	id       int
	listener Listener
}

// NewBus creates a bus that stamps events with the given clock.
func NewBus(clock shared.Clock) *Bus {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Bus{clock: clock}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *Bus) Subscribe(listener Listener) (unsubscribe func()) {
	b.nextSubID++
	id := b.nextSubID
	b.listeners = append(b.listeners, subscription{id: id, listener: listener})

	return func() {
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish stamps and delivers an event.
func (b *Bus) Publish(eventType EventType, data any) {
	b.nextID++
	ev := New(b.nextID, b.clock.Now(), eventType, data)

	// Snapshot so an unsubscribe during delivery does not skip a listener.
	listeners := make([]subscription, len(b.listeners))
	copy(listeners, b.listeners)
	for _, s := range listeners {
		s.listener.OnEvent(ev)
	}
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(EventType, any) {}

// PublisherOrDiscard returns p, or Discard when p is nil
func PublisherOrDiscard(p Publisher) Publisher {
	if p == nil {
		return Discard{}
	}
	return p
}
