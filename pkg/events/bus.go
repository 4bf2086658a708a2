package events

import (
	"sync"
)

// Type enumerates the field lifecycle moments that may trigger validation.
type Type string

const (
	TypeBlur   Type = "blur"
	TypeInput  Type = "input"
	TypeChange Type = "change"
	TypeSubmit Type = "submit"
)

// Types returns every lifecycle type in canonical order.
func Types() []Type {
	return []Type{TypeBlur, TypeInput, TypeChange, TypeSubmit}
}

// Event is one field lifecycle occurrence. Events are ephemeral: the bus
// delivers them and retains nothing.
type Event struct {
	Type Type
	Path string
}

// Handler consumes a delivered event.
type Handler func(Event)

// SubscribeOption customises a subscription.
type SubscribeOption func(*subscription)

// WithTypes restricts delivery to the listed event types. Without it a
// subscriber receives every event.
func WithTypes(types ...Type) SubscribeOption {
	return func(s *subscription) {
		if len(types) == 0 {
			return
		}
		s.filter = make(map[Type]struct{}, len(types))
		for _, t := range types {
			s.filter[t] = struct{}{}
		}
	}
}

type subscription struct {
	id      uint64
	handler Handler
	filter  map[Type]struct{}
}

func (s *subscription) wants(evt Event) bool {
	if s.filter == nil {
		return true
	}
	_, ok := s.filter[evt.Type]
	return ok
}

// Subscription identifies an active subscriber and allows its removal.
type Subscription struct {
	bus *Bus
	id  uint64
}

// Unsubscribe removes the subscriber from the bus. It is safe to call more
// than once.
func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	s.bus.remove(s.id)
}

// Bus is an in-process publish/subscribe channel. Delivery is synchronous and
// follows subscription order; PublishAsync schedules each handler as an
// independent goroutine so slow subscriber work never blocks publication of
// subsequent events.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []*subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler and returns its subscription handle. A nil
// handler is ignored and yields an inert handle.
func (b *Bus) Subscribe(handler Handler, opts ...SubscribeOption) Subscription {
	if handler == nil {
		return Subscription{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, handler: handler}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(sub)
	}
	b.subs = append(b.subs, sub)
	return Subscription{bus: b, id: sub.id}
}

// Publish delivers evt synchronously to every matching subscriber in
// subscription order before returning.
func (b *Bus) Publish(evt Event) {
	for _, sub := range b.snapshot() {
		if sub.wants(evt) {
			sub.handler(evt)
		}
	}
}

// PublishAsync delivers evt to every matching subscriber, each on its own
// goroutine. Publish order is preserved per caller; no ordering is guaranteed
// across events published concurrently from different goroutines.
func (b *Bus) PublishAsync(evt Event) {
	for _, sub := range b.snapshot() {
		if sub.wants(evt) {
			go sub.handler(evt)
		}
	}
}

// SubscriberCount reports the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) snapshot() []*subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*subscription, len(b.subs))
	copy(out, b.subs)
	return out
}

func (b *Bus) remove(id uint64) {
	if id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
