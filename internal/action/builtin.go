package action

import "fmt"

// Built-in action names.
const (
	Quit      = "app.quit"
	SetStatus = "status.set"
	LogMsg    = "log.message"
	RunScript = "script.run"
)

// Env connects built-in actions to the running application.
type Env struct {
	// Quit stops the application.
	Quit func()

	// SetStatus replaces the status line text.
	SetStatus func(text string)
}

// RegisterBuiltins registers app.quit, status.set, log.message and
// script.run.
func RegisterBuiltins(r *Registry, env Env, scripts *ScriptRunner) error {
	builtins := map[string]Func{
		Quit: func(*Context) error {
			if env.Quit != nil {
				env.Quit()
			}
			return nil
		},
		SetStatus: func(ctx *Context) error {
			text, ok := ctx.String("text")
			if !ok {
				return fmt.Errorf("%w: text", ErrMissingArg)
			}
			if env.SetStatus != nil {
				env.SetStatus(text)
			}
			return nil
		},
		LogMsg: func(ctx *Context) error {
			msg, ok := ctx.String("message")
			if !ok && ctx.Event != nil {
				msg = "shortcut " + ctx.Event.String()
			}
			ctx.Logger.Info("%s", msg)
			return nil
		},
		RunScript: func(ctx *Context) error {
			if scripts == nil {
				return fmt.Errorf("no script runner configured")
			}
			return scripts.Run(ctx)
		},
	}

	for _, name := range []string{Quit, SetStatus, LogMsg, RunScript} {
		if err := r.Register(name, builtins[name]); err != nil {
			return err
		}
	}
	return nil
}
