package keymap

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/dshills/keyhook/internal/action"
	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/input/surface"
	"github.com/dshills/keyhook/internal/logging"
	"github.com/dshills/keyhook/internal/shortcut"
)

// Manager keeps one shortcut hook per binding of the applied keymap.
type Manager struct {
	surface surface.Surface
	actions *action.Registry
	logger  *logging.Logger

	mu      sync.Mutex
	hooks   map[string]*boundHook
	current *Keymap
	closed  bool
	onError func(binding Binding, err error)
}

// boundHook is the hook of one binding together with the binding and
// callback it was last rendered with.
type boundHook struct {
	hook     *shortcut.Hook
	binding  Binding
	callback shortcut.Callback
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the manager logger.
func WithManagerLogger(l *logging.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithErrorHandler sets a function called when a bound action fails.
func WithErrorHandler(fn func(binding Binding, err error)) ManagerOption {
	return func(m *Manager) {
		m.onError = fn
	}
}

// NewManager creates a manager that binds on s and runs actions from r.
func NewManager(s surface.Surface, r *action.Registry, opts ...ManagerOption) *Manager {
	m := &Manager{
		surface: s,
		actions: r,
		logger:  logging.Nop(),
		hooks:   make(map[string]*boundHook),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply makes km the active keymap. Invalid keymaps and bindings to
// unknown actions are rejected as a whole and the previous keymap stays
// active.
//
// Hooks of bindings present in both keymaps are re-rendered. A binding
// whose keys, action and args are unchanged keeps its callback and args
// map, so its listener stays registered; any other binding gets a fresh
// callback and re-registers. Hooks of removed bindings are closed.
func (m *Manager) Apply(km *Keymap) error {
	if err := km.Validate(); err != nil {
		return err
	}
	for i, b := range km.Bindings {
		if !m.actions.Has(b.Action) {
			return fmt.Errorf("%s: %w: %s", b.label(i), action.ErrUnknownAction, b.Action)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return shortcut.ErrClosed
	}

	ids := bindingIDs(km.Bindings)
	seen := make(map[string]bool, len(ids))
	for i, b := range km.Bindings {
		id := ids[i]
		seen[id] = true

		bh, ok := m.hooks[id]
		if !ok {
			bh = &boundHook{
				hook: shortcut.New(m.surface, shortcut.WithLogger(m.logger.WithField("binding", id))),
			}
			m.hooks[id] = bh
		}
		if !ok || !sameBinding(bh.binding, b) {
			bh.binding = b.clone()
			bh.callback = m.callbackFor(bh.binding)
		}
		if err := bh.hook.Render(bh.binding.Spec(), bh.callback, bh.binding.Action, bh.binding.Args); err != nil {
			return fmt.Errorf("%s: %w", b.label(i), err)
		}
	}

	for id, bh := range m.hooks {
		if !seen[id] {
			bh.hook.Close()
			delete(m.hooks, id)
		}
	}

	m.current = km.Clone()
	m.logger.Info("keymap %q applied (%d bindings)", km.Name, len(km.Bindings))
	return nil
}

// sameBinding reports whether two bindings trigger the same action the
// same way. Description and ID do not affect the listener.
func sameBinding(a, b Binding) bool {
	return a.Action == b.Action &&
		slices.Equal(a.Keys, b.Keys) &&
		reflect.DeepEqual(a.Args, b.Args)
}

// callbackFor returns the callback for one binding. The binding is
// captured by value; changes reach the listener through re-rendering.
func (m *Manager) callbackFor(b Binding) shortcut.Callback {
	return func(ev *key.Event) {
		m.logger.Debug("%s -> %s", ev, b.Action)
		if err := m.actions.Run(b.Action, ev, b.Args); err != nil {
			m.logger.Warn("%v", err)
			if m.onError != nil {
				m.onError(b, err)
			}
		}
	}
}

// Current returns a copy of the active keymap, or nil.
func (m *Manager) Current() *Keymap {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	return m.current.Clone()
}

// Active returns the number of bindings with a registered listener.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, bh := range m.hooks {
		if bh.hook.State() == shortcut.StateActive {
			n++
		}
	}
	return n
}

// Close tears down every hook. Apply fails after Close.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, bh := range m.hooks {
		bh.hook.Close()
		delete(m.hooks, id)
	}
	m.closed = true
}
