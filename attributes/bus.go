package attributes

import "sync"

// Listener receives the value passed to Emit followed by any extra arguments
type Listener func(value any, args ...any)

// Bus dispatches named events to registered listeners.
// Dispatch is synchronous and in registration order. The listener list is
// copied before dispatch, so listeners may emit or register without deadlock.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
	}
}

// On registers listener for event and returns the bus for chaining
func (b *Bus) On(event string, listener Listener) *Bus {
	if listener == nil {
		return b
	}

	b.mu.Lock()
	b.listeners[event] = append(b.listeners[event], listener)
	b.mu.Unlock()

	return b
}

// Emit invokes every listener registered for event.
// The first argument is delivered as the value, the rest as extra arguments.
func (b *Bus) Emit(event string, args ...any) {
	b.mu.RLock()
	registered := b.listeners[event]
	snapshot := make([]Listener, len(registered))
	copy(snapshot, registered)
	b.mu.RUnlock()

	var value any
	var rest []any
	if len(args) > 0 {
		value = args[0]
		rest = args[1:]
	}

	for _, listener := range snapshot {
		listener(value, rest...)
	}
}

// ListenerCount returns how many listeners are registered for event
func (b *Bus) ListenerCount(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners[event])
}
