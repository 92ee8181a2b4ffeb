package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultScriptTimeout bounds a single script run.
const DefaultScriptTimeout = 2 * time.Second

// ErrScriptTimeout is returned when a script runs past its timeout.
var ErrScriptTimeout = errors.New("script timed out")

// ScriptRunner runs Lua snippets bound to shortcuts.
//
// Each run gets a fresh sandboxed state with only the base, table, string
// and math libraries. Scripts see an "event" table and the functions
// status(text) and log(text).
type ScriptRunner struct {
	timeout   time.Duration
	setStatus func(string)
}

// ScriptOption configures a ScriptRunner.
type ScriptOption func(*ScriptRunner)

// WithScriptTimeout sets the per-run timeout.
func WithScriptTimeout(d time.Duration) ScriptOption {
	return func(s *ScriptRunner) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithStatusFunc sets the function backing status(text).
func WithStatusFunc(fn func(string)) ScriptOption {
	return func(s *ScriptRunner) {
		s.setStatus = fn
	}
}

// NewScriptRunner creates a script runner.
func NewScriptRunner(opts ...ScriptOption) *ScriptRunner {
	s := &ScriptRunner{timeout: DefaultScriptTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes args["code"] or, failing that, the file at args["file"].
func (s *ScriptRunner) Run(actx *Context) error {
	code, hasCode := actx.String("code")
	file, hasFile := actx.String("file")
	if !hasCode && !hasFile {
		return fmt.Errorf("%w: code or file", ErrMissingArg)
	}

	L := s.newState(actx)
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	L.SetContext(ctx)

	var err error
	if hasCode {
		err = doWithRecovery(func() error { return L.DoString(code) })
	} else {
		err = doWithRecovery(func() error { return L.DoFile(file) })
	}
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w after %s", ErrScriptTimeout, s.timeout)
		}
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

func (s *ScriptRunner) newState(actx *Context) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ev := L.NewTable()
	if actx.Event != nil {
		L.SetField(ev, "key", lua.LString(actx.Event.Key))
		L.SetField(ev, "combo", lua.LString(actx.Event.String()))
		L.SetField(ev, "ctrl", lua.LBool(actx.Event.Ctrl()))
		L.SetField(ev, "alt", lua.LBool(actx.Event.Alt()))
		L.SetField(ev, "shift", lua.LBool(actx.Event.Shift()))
		L.SetField(ev, "meta", lua.LBool(actx.Event.Meta()))
	}
	L.SetGlobal("event", ev)

	L.SetGlobal("status", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if s.setStatus != nil {
			s.setStatus(text)
		}
		return 0
	}))
	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if actx.Logger != nil {
			actx.Logger.Info("%s", text)
		}
		return 0
	}))

	return L
}

// doWithRecovery executes a function with panic recovery.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
