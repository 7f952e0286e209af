package events

import (
	"context"
	"sync"

	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

// Handler runs synchronously on the publisher's goroutine. A returned error
// is logged and isolated; it never reaches the publisher.
type Handler func(ctx context.Context, e Event) error

// Bus is the process-wide pub/sub register. It is an explicit object owned
// by startup rather than package state, so tests can substitute a
// recording fake.
type Bus interface {
	Subscribe(kind Kind, h Handler) int
	Unsubscribe(kind Kind, id int)
	Publish(ctx context.Context, e Event)
}

type subscription struct {
	id int
	h  Handler
}

type InProcessBus struct {
	mu     sync.RWMutex
	subs   map[Kind][]subscription
	nextID int
	log    *logger.Logger
}

func NewInProcessBus(log *logger.Logger) *InProcessBus {
	return &InProcessBus{
		subs: make(map[Kind][]subscription),
		log:  log,
	}
}

func (b *InProcessBus) Subscribe(kind Kind, h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscription{id: b.nextID, h: h})
	return b.nextID
}

func (b *InProcessBus) Unsubscribe(kind Kind, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == id {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[kind]) == 0 {
		delete(b.subs, kind)
	}
}

// Publish invokes every handler registered for the event's kind, in
// registration order, on the caller's goroutine. A handler failure or panic
// is logged and never blocks sibling handlers.
func (b *InProcessBus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[e.Kind()]...)
	b.mu.RUnlock()

	for _, s := range subs {
		b.invoke(ctx, s, e)
	}
}

func (b *InProcessBus) invoke(ctx context.Context, s subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked", "kind", e.Kind(), "handler_id", s.id, "panic", r)
		}
	}()

	if err := s.h(ctx, e); err != nil {
		b.log.Error("event handler failed", "kind", e.Kind(), "handler_id", s.id, "err", err)
	}
}
