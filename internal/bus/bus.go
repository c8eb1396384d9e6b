// Package bus provides the in-process notification bus used to fan out
// named signals between features (e.g. a booking write notifying the
// admin dashboard). Signals carry no payload, delivery is synchronous and
// best-effort, and there is no replay: subscribers only observe signals
// published after they subscribe.
package bus

import (
	"log/slog"
	"sync"
)

// SignalBookingUpdated is published after every successful booking write.
const SignalBookingUpdated = "bookingUpdated"

// SignalOrderCompleted is published once when a payment return marks an
// order as paid.
const SignalOrderCompleted = "orderCompleted"

// Handler is invoked synchronously for each published signal it is
// subscribed to.
type Handler func()

// Bus is an in-process publish/subscribe hub for named signals.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
	logger *slog.Logger
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[string]map[int]Handler),
		logger: logger,
	}
}

// Subscribe registers a handler for the given signal and returns an
// unsubscribe function. Unsubscribing more than once is harmless.
func (b *Bus) Subscribe(signal string, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[signal] == nil {
		b.subs[signal] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[signal][id] = fn

	return func() {
		b.mu.Lock()
		delete(b.subs[signal], id)
		b.mu.Unlock()
	}
}

// Publish delivers the signal to every current subscriber, in
// registration-independent order, and returns the number of handlers
// invoked. A panicking handler is recovered and logged so it cannot take
// down the publisher or starve the remaining subscribers.
func (b *Bus) Publish(signal string) int {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[signal]))
	for _, fn := range b.subs[signal] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		b.invoke(signal, fn)
	}
	return len(handlers)
}

func (b *Bus) invoke(signal string, fn Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("bus handler panicked",
				slog.String("signal", signal),
				slog.Any("panic", rec),
			)
		}
	}()
	fn()
}
