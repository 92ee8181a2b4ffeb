package surface

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/logging"
)

// Listener receives key-down events from a surface.
type Listener func(ev *key.Event)

// ListenerID identifies a registered listener.
type ListenerID string

// Surface is a global source of key-down events.
type Surface interface {
	// AddListener registers l and returns its ID.
	AddListener(l Listener) ListenerID

	// RemoveListener unregisters the listener. It returns false if the ID
	// is not registered.
	RemoveListener(id ListenerID) bool
}

type entry struct {
	id       ListenerID
	listener Listener
}

// Dispatcher is an in-process Surface. Events are delivered serially, in
// registration order. It is safe for concurrent use. Listeners may add or
// remove listeners while an event is being dispatched: a listener removed
// mid-dispatch is not called, one added mid-dispatch sees the next event.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []entry
	logger    *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddListener registers a listener.
func (d *Dispatcher) AddListener(l Listener) ListenerID {
	id := ListenerID(uuid.NewString())

	d.mu.Lock()
	d.listeners = append(d.listeners, entry{id: id, listener: l})
	n := len(d.listeners)
	d.mu.Unlock()

	d.logger.Debug("listener %s added (%d active)", id, n)
	return id
}

// RemoveListener unregisters a listener by ID.
func (d *Dispatcher) RemoveListener(id ListenerID) bool {
	d.mu.Lock()
	removed := false
	for i, e := range d.listeners {
		if e.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			removed = true
			break
		}
	}
	n := len(d.listeners)
	d.mu.Unlock()

	if removed {
		d.logger.Debug("listener %s removed (%d active)", id, n)
	}
	return removed
}

// Count returns the number of registered listeners.
func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Has reports whether the listener ID is registered.
func (d *Dispatcher) Has(id ListenerID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.listeners {
		if e.id == id {
			return true
		}
	}
	return false
}

// Dispatch delivers ev to every listener registered when the call
// starts. It returns true if a listener prevented the default action.
func (d *Dispatcher) Dispatch(ev *key.Event) bool {
	if ev == nil {
		return false
	}

	d.mu.RLock()
	snapshot := make([]entry, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.RUnlock()

	for _, e := range snapshot {
		if !d.Has(e.id) {
			continue
		}
		e.listener(ev)
	}
	return ev.DefaultPrevented()
}
