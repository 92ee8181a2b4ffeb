// Package action maps action names from keymaps to Go and Lua handlers.
package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/logging"
)

var (
	// ErrUnknownAction is returned when running an unregistered action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateAction is returned when registering a name twice.
	ErrDuplicateAction = errors.New("action already registered")

	// ErrMissingArg is returned when a required argument is absent.
	ErrMissingArg = errors.New("missing action argument")
)

// Context is passed to an action when its shortcut fires.
type Context struct {
	// Name is the action being run.
	Name string

	// Event is the key-down that triggered the action.
	Event *key.Event

	// Args are the binding's fixed arguments.
	Args map[string]any

	// Logger is scoped to the action.
	Logger *logging.Logger
}

// String returns args[name] if it is a string.
func (c *Context) String(name string) (string, bool) {
	v, ok := c.Args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Func is an action handler.
type Func func(ctx *Context) error

// Registry holds named actions. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Func
	logger  *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Registry{
		actions: make(map[string]Func),
		logger:  logger,
	}
}

// Register adds an action.
func (r *Registry) Register(name string, fn Func) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, name)
	}
	r.actions[name] = fn
	return nil
}

// Has reports whether an action is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named action for ev.
func (r *Registry) Run(name string, ev *key.Event, args map[string]any) error {
	r.mu.RLock()
	fn, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}

	ctx := &Context{
		Name:   name,
		Event:  ev,
		Args:   args,
		Logger: r.logger.WithField("action", name),
	}
	if err := fn(ctx); err != nil {
		return fmt.Errorf("action %s: %w", name, err)
	}
	return nil
}
