// ABOUTME: Typed event bus used by the chat session to notify the UI and SDK listeners
// ABOUTME: Handlers run synchronously in subscription order; goroutine-safe subscribe/unsubscribe

package chat

import "sync"

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscription[T any] struct {
	id int
	h  Handler[T]
}

// Bus is a typed event bus that delivers events to registered handlers.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []subscription[T]
	nextID int
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
// Calling the returned function more than once is harmless.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, h: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all registered handlers.
// Publish may be called from several goroutines at once, so handlers must be
// safe for concurrent use.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	// Snapshot handlers to avoid holding lock during callbacks
	snapshot := make([]Handler[T], len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.h
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
