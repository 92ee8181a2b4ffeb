package shortcut

import (
	"errors"
	"reflect"
	"sync"
	"unsafe"

	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/input/surface"
	"github.com/dshills/keyhook/internal/logging"
)

var (
	// ErrClosed is returned by Render after Close.
	ErrClosed = errors.New("shortcut hook closed")

	// ErrNilCallback is returned when Render is given a nil callback.
	ErrNilCallback = errors.New("shortcut callback is nil")

	// ErrNilSurface is returned when a hook has no surface to listen on.
	ErrNilSurface = errors.New("shortcut surface is nil")
)

// Callback is invoked with the event that triggered a shortcut.
type Callback func(ev *key.Event)

// State is the listener state of a hook.
type State int

const (
	// StateInactive means no listener is registered.
	StateInactive State = iota

	// StateActive means exactly one listener is registered.
	StateActive
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Hook keeps one shortcut listener registered on a surface.
//
// A Hook is safe for concurrent use, but Render and Close are expected to
// be called from the code that owns the binding, the way a UI component
// renders and unmounts.
type Hook struct {
	surface surface.Surface
	logger  *logging.Logger

	mu     sync.Mutex
	id     surface.ListenerID
	active bool
	closed bool

	keys key.Spec
	cbID unsafe.Pointer
	deps []any

	// stop detaches a Scope context; nil for hooks made by New or Use.
	stop func() bool

	registrations int
}

// Option configures a Hook.
type Option func(*Hook)

// WithLogger sets the hook logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Hook) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates an inactive hook on s.
func New(s surface.Surface, opts ...Option) *Hook {
	h := &Hook{
		surface: s,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Use creates a hook on s and renders it once.
func Use(s surface.Surface, keys key.Spec, cb Callback, deps ...any) (*Hook, error) {
	h := New(s)
	if err := h.Render(keys, cb, deps...); err != nil {
		return nil, err
	}
	return h, nil
}

// Render activates the hook, or re-registers its listener when keys, the
// callback or any dependency differs from the previous render.
//
// Callbacks are compared by reference, like deps. Every evaluation of a
// capturing closure or a method value is a new callback, so callers that
// want the listener to stay put across renders keep the same func value.
// Deps of map, slice, func and pointer type are compared by reference;
// other comparable values with ==.
func (h *Hook) Render(keys key.Spec, cb Callback, deps ...any) error {
	if cb == nil {
		return ErrNilCallback
	}
	if h.surface == nil {
		return ErrNilSurface
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	id := callbackID(cb)
	if h.active && h.keys.Equal(keys) && h.cbID == id && depsEqual(h.deps, deps) {
		return nil
	}

	// The previous listener must be gone before the next one exists.
	h.unregisterLocked()

	h.keys = append(key.Spec(nil), keys...)
	h.cbID = id
	h.deps = append([]any(nil), deps...)
	h.id = h.surface.AddListener(listenerFor(h.keys, cb))
	h.active = true
	h.registrations++

	h.logger.Debug("shortcut [%s] registered", h.keys)
	return nil
}

// Close removes the listener. The hook cannot be rendered again.
// Close is idempotent.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.unregisterLocked()
	h.closed = true
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}
}

// State returns the current listener state.
func (h *Hook) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active {
		return StateActive
	}
	return StateInactive
}

// Keys returns the keys of the active registration.
func (h *Hook) Keys() key.Spec {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append(key.Spec(nil), h.keys...)
}

// Registrations returns how many times a listener has been registered.
func (h *Hook) Registrations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registrations
}

func (h *Hook) unregisterLocked() {
	if !h.active {
		return
	}
	h.surface.RemoveListener(h.id)
	h.logger.Debug("shortcut [%s] unregistered", h.keys)
	h.id = ""
	h.active = false
}

// listenerFor builds the listener for one registration. It captures keys
// and cb by value; a later render installs a new listener instead of
// mutating this one.
func listenerFor(keys key.Spec, cb Callback) surface.Listener {
	return func(ev *key.Event) {
		if !keys.Matches(ev) {
			return
		}
		ev.PreventDefault()
		cb(ev)
	}
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameDep(a[i], b[i]) {
			return false
		}
	}
	return true
}

// callbackID returns the closure record cb points at. Two callbacks share
// an ID only when they are the same func value, or the same function
// with nothing captured.
func callbackID(cb Callback) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&cb))
}

// sameDep reports whether two deps are the same value. Maps, slices and
// funcs are compared by reference, comparable values with == (pointers
// by address). Uncomparable structs and arrays fall back to
// reflect.DeepEqual.
func sameDep(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	case reflect.Func:
		return funcDataOf(a) == funcDataOf(b)
	}
	if !va.Type().Comparable() {
		return reflect.DeepEqual(a, b)
	}
	// Structs and arrays holding uncomparable interface values panic on ==.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// funcDataOf returns the closure record of a func held in an interface.
// reflect only exposes the code pointer, which closures share.
func funcDataOf(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
