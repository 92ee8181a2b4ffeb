// Package app wires the input surface, keymap, actions and status line
// into the keyhook application and manages its lifecycle.
package app

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/keyhook/internal/action"
	"github.com/dshills/keyhook/internal/config"
	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/input/keymap"
	"github.com/dshills/keyhook/internal/input/surface"
	"github.com/dshills/keyhook/internal/logging"
)

// Application coordinates keyhook components.
type Application struct {
	mu sync.RWMutex

	opts   Options
	config *config.Config

	logger    *logging.Logger
	logCloser io.Closer

	terminal *surface.Terminal
	actions  *action.Registry
	keymaps  *keymap.Manager

	status string
	drawMu sync.Mutex

	running   atomic.Bool
	cancel    context.CancelFunc
	ready     chan struct{}
	readyOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// KeymapPath overrides the keymap file from the configuration.
	KeymapPath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput receives logs when no log file is configured.
	// Defaults to os.Stderr.
	LogOutput io.Writer
}

// New creates an Application from the configuration at opts.ConfigPath.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.KeymapPath != "" {
		cfg.Keymap.Path = opts.KeymapPath
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}

	app := &Application{
		opts:   opts,
		config: cfg,
		ready:  make(chan struct{}),
	}

	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	app.actions = action.NewRegistry(app.logger.WithComponent("action"))
	scripts := action.NewScriptRunner(action.WithStatusFunc(app.SetStatus))
	env := action.Env{Quit: app.Shutdown, SetStatus: app.SetStatus}
	if err := action.RegisterBuiltins(app.actions, env, scripts); err != nil {
		app.closeLog()
		return nil, &InitError{Component: "actions", Err: err}
	}

	return app, nil
}

func (app *Application) initLogger() error {
	level := app.config.Level()
	if path := app.config.Logging.File; path != "" {
		logger, closer, err := logging.OpenFile(path, level)
		if err != nil {
			return err
		}
		app.logger, app.logCloser = logger, closer
		return nil
	}
	out := app.opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	app.logger = logging.New(out, level)
	return nil
}

func (app *Application) closeLog() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}

// SetTerminal sets the input surface. Must be called before Run.
func (app *Application) SetTerminal(t *surface.Terminal) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.terminal = t
	return nil
}

// Run binds the keymap on the terminal and processes input until ctx is
// done, Shutdown is called, or the quit action runs.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.closeLog()

	app.mu.Lock()
	term := app.terminal
	ctx, cancel := context.WithCancel(ctx)
	app.cancel = cancel
	app.mu.Unlock()
	defer cancel()

	if term == nil {
		return &InitError{Component: "terminal", Err: ErrNoTerminal}
	}
	if err := term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer term.Shutdown()

	manager := keymap.NewManager(term, app.actions,
		keymap.WithManagerLogger(app.logger.WithComponent("keymap")),
		keymap.WithErrorHandler(func(b keymap.Binding, err error) {
			app.SetStatus("error: " + err.Error())
		}),
	)
	defer manager.Close()

	km, err := app.loadKeymap()
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	if err := manager.Apply(km); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}

	app.mu.Lock()
	app.keymaps = manager
	app.mu.Unlock()

	term.SetDefaultHandler(app.defaultAction)
	term.OnResize(func(int, int) { app.draw() })

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	if path := app.config.Keymap.Path; path != "" && app.config.Keymap.Watch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			debounce := app.config.Keymap.Debounce
			err := keymap.Watch(ctx, path, durationOf(debounce), app.reloadKeymap, func(err error) {
				app.logger.Warn("keymap reload: %v", err)
				app.SetStatus("keymap error: " + err.Error())
			})
			if err != nil {
				app.logger.Error("keymap watcher stopped: %v", err)
			}
		}()
	}

	app.logger.Info("keyhook started with keymap %q", km.Name)
	app.draw()
	app.readyOnce.Do(func() { close(app.ready) })

	return term.Run(ctx)
}

// Ready is closed once Run has bound the keymap and is reading input.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

func (app *Application) loadKeymap() (*keymap.Keymap, error) {
	if path := app.config.Keymap.Path; path != "" {
		return keymap.Load(path)
	}
	return DefaultKeymap(), nil
}

func (app *Application) reloadKeymap(km *keymap.Keymap) {
	app.mu.RLock()
	manager := app.keymaps
	app.mu.RUnlock()
	if manager == nil {
		return
	}

	if err := manager.Apply(km); err != nil {
		app.logger.Warn("keymap reload rejected: %v", err)
		app.SetStatus("keymap error: " + err.Error())
		return
	}
	app.SetStatus("keymap reloaded")
}

// defaultAction handles key presses no binding claimed.
func (app *Application) defaultAction(ev *key.Event) {
	if quitKeys.Matches(ev) {
		app.logger.Debug("default quit on %s", ev)
		app.Shutdown()
	}
}

// Shutdown stops a running application.
func (app *Application) Shutdown() {
	app.mu.RLock()
	cancel := app.cancel
	app.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// IsRunning returns true while Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// SetStatus replaces the status line text.
func (app *Application) SetStatus(text string) {
	app.mu.Lock()
	app.status = text
	app.mu.Unlock()
	app.draw()
}

// Status returns the status line text.
func (app *Application) Status() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.status
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Actions returns the action registry.
func (app *Application) Actions() *action.Registry {
	return app.actions
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}
