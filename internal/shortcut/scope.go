package shortcut

import (
	"context"

	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/input/surface"
)

// Scope registers a shortcut for the lifetime of ctx. The listener is
// removed when ctx is done or when the returned hook is closed,
// whichever comes first.
func Scope(ctx context.Context, s surface.Surface, keys key.Spec, cb Callback, deps ...any) (*Hook, error) {
	h, err := Use(s, keys, cb, deps...)
	if err != nil {
		return nil, err
	}

	stop := context.AfterFunc(ctx, h.Close)
	h.mu.Lock()
	if h.closed {
		stop()
	} else {
		h.stop = stop
	}
	h.mu.Unlock()
	return h, nil
}

// With registers a shortcut, runs fn and removes the listener when fn
// returns or panics.
func With(s surface.Surface, keys key.Spec, cb Callback, fn func() error) error {
	h, err := Use(s, keys, cb)
	if err != nil {
		return err
	}
	defer h.Close()

	return fn()
}
