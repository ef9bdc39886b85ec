package events

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. Publish blocks
// once a subscriber falls this far behind, so consumers must drain promptly.
const subscriberBuffer = 128

// Emitter fans one producer's events out to any number of subscribers.
// Publish is safe to call from multiple goroutines.
type Emitter[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	closed bool
}

// NewEmitter creates an Emitter with no subscribers.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe registers a new subscriber. The returned channel is closed when
// the emitter is closed.
func (e *Emitter[T]) Subscribe() <-chan T {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan T, subscriberBuffer)
	if e.closed {
		close(ch)
		return ch
	}
	e.subs = append(e.subs, ch)
	return ch
}

// Publish delivers the event to every subscriber. Publishing after Close is
// a no-op.
func (e *Emitter[T]) Publish(event T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	for _, ch := range e.subs {
		ch <- event
	}
}

// Close releases all subscriber channels. Safe to call multiple times.
func (e *Emitter[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
}
