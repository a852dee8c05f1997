package celadon

import "sync"

// Subscription identifies a handler added to an Event.
type Subscription uint64

// Event is an ordered list of handlers that are all called on Emit.
// The zero value is ready to use.
type Event[T any] struct {
	mu       sync.RWMutex
	handlers []eventHandler[T]
	next     Subscription
}

type eventHandler[T any] struct {
	id Subscription
	fn func(T) bool
}

// Subscribe adds fn and returns a handle for Unsubscribe.
func (e *Event[T]) Subscribe(fn func(T) bool) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	e.handlers = append(e.handlers, eventHandler[T]{id: e.next, fn: fn})
	return e.next
}

// Unsubscribe removes the handler added under s. It reports whether one was
// found.
func (e *Event[T]) Unsubscribe(s Subscription) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.handlers {
		if h.id == s {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every handler with value and reports whether any returned true.
func (e *Event[T]) Emit(value T) bool {
	e.mu.RLock()
	handlers := e.handlers
	e.mu.RUnlock()

	handled := false
	for _, h := range handlers {
		if h.fn(value) {
			handled = true
		}
	}
	return handled
}

// Len returns the number of subscribed handlers.
func (e *Event[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}
