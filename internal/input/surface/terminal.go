package surface

import (
	"context"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/logging"
)

// Terminal is a Surface fed by a tcell screen.
//
// Run polls the screen and dispatches every key press to the registered
// listeners. When no listener prevents the default action, the default
// handler (if any) receives the event.
type Terminal struct {
	*Dispatcher

	screen tcell.Screen
	logger *logging.Logger

	mu             sync.Mutex
	defaultHandler Listener
	resizeHandler  func(width, height int)
}

// NewTerminal creates a terminal surface on the real terminal.
func NewTerminal(logger *logging.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, logger), nil
}

// NewTerminalWithScreen creates a terminal surface on an existing screen.
// Tests pass a tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen, logger *logging.Logger) *Terminal {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Terminal{
		Dispatcher: NewDispatcher(WithLogger(logger)),
		screen:     screen,
		logger:     logger,
	}
}

// Init initializes the screen. Must be called before Run.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Screen returns the underlying screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// SetDefaultHandler sets the action run for events no listener prevented.
func (t *Terminal) SetDefaultHandler(h Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.defaultHandler = h
}

// OnResize registers a callback for terminal resize events.
func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeHandler = callback
}

// Run polls events until ctx is cancelled or the screen is finalized.
func (t *Terminal) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent so the loop can observe cancellation.
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			t.HandleKey(e)
		case *tcell.EventResize:
			w, h := e.Size()
			t.mu.Lock()
			handler := t.resizeHandler
			t.mu.Unlock()
			if handler != nil {
				handler(w, h)
			}
		}
	}
}

// HandleKey converts and dispatches a single tcell key event. It returns
// true if a listener prevented the default action.
func (t *Terminal) HandleKey(e *tcell.EventKey) bool {
	ev := ConvertKey(e)
	if ev == nil {
		return false
	}

	if t.Dispatch(ev) {
		t.logger.Debug("%s handled", ev)
		return true
	}

	t.mu.Lock()
	handler := t.defaultHandler
	t.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
	return false
}

// namedKeys maps tcell special keys to key-down names.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      key.NameEnter,
	tcell.KeyEscape:     key.NameEscape,
	tcell.KeyTab:        key.NameTab,
	tcell.KeyBackspace:  key.NameBackspace,
	tcell.KeyBackspace2: key.NameBackspace,
	tcell.KeyDelete:     key.NameDelete,
	tcell.KeyInsert:     key.NameInsert,
	tcell.KeyHome:       key.NameHome,
	tcell.KeyEnd:        key.NameEnd,
	tcell.KeyPgUp:       key.NamePageUp,
	tcell.KeyPgDn:       key.NamePageDown,
	tcell.KeyUp:         key.NameUp,
	tcell.KeyDown:       key.NameDown,
	tcell.KeyLeft:       key.NameLeft,
	tcell.KeyRight:      key.NameRight,
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// ConvertKey converts a tcell key event to a key-down event. It returns
// nil for keys with no key-down equivalent.
func ConvertKey(e *tcell.EventKey) *key.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch {
	case k == tcell.KeyRune:
		r := e.Rune()
		// Terminals fold Shift into the character.
		if unicode.IsUpper(r) {
			mods |= key.ModShift
		}
		if r == ' ' {
			return key.NewEvent(key.NameSpace, mods)
		}
		return key.NewEvent(string(r), mods)

	case k == tcell.KeyBacktab:
		return key.NewEvent(key.NameTab, mods|key.ModShift)

	case k == tcell.KeyCtrlSpace:
		return key.NewEvent(key.NameSpace, mods|key.ModCtrl)
	}

	if name, ok := namedKeys[k]; ok {
		return key.NewEvent(name, mods)
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := string(rune('a' + int(k-tcell.KeyCtrlA)))
		return key.NewEvent(letter, mods|key.ModCtrl)
	}

	return nil
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
