// Package app wires configuration, logging and scripting together and
// implements the operations behind the charstr command.
package app

import (
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dshills/charstr/internal/config"
	"github.com/dshills/charstr/internal/logging"
)

// Application holds everything one charstr invocation needs.
type Application struct {
	config  *config.Config
	logger  *logging.Logger
	metrics *Metrics
	session uuid.UUID

	out    io.Writer
	errOut io.Writer

	opts Options
}

// Options configures the application. Non-empty fields override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Format sets the output format ("text" or "hex").
	Format string

	// Output receives command results. Defaults to os.Stdout.
	Output io.Writer

	// ErrOutput receives log lines. Defaults to os.Stderr.
	ErrOutput io.Writer
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		out:     opts.Output,
		errOut:  opts.ErrOutput,
		metrics: NewMetrics(),
		session: uuid.New(),
	}
	if app.out == nil {
		app.out = os.Stdout
	}
	if app.errOut == nil {
		app.errOut = os.Stderr
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap loads configuration and builds the logger.
func (app *Application) bootstrap() error {
	cfg, err := config.Load(app.opts.ConfigPath, app.flagOverrides)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	app.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: app.errOut,
		Prefix: cfg.Log.Prefix,
	}).WithField("session", app.session.String())

	app.logger.Debug("configuration loaded (format=%s, instruction_limit=%d, timeout=%s)",
		cfg.Output.Format, cfg.Script.InstructionLimit, cfg.Script.Timeout)
	return nil
}

// flagOverrides applies the non-empty Options fields, which take priority
// over the file and environment.
func (app *Application) flagOverrides(cfg *config.Config) {
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.Format != "" {
		cfg.Output.Format = app.opts.Format
	}
}

// Config returns the resolved configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Metrics returns the operation metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Session returns the identifier attached to every log line.
func (app *Application) Session() uuid.UUID {
	return app.session
}

// Close logs a metrics summary.
func (app *Application) Close() {
	snap := app.metrics.Snapshot()
	app.logger.Debug("session done: %d operations, %d errors, cache hits=%d misses=%d steps=%d",
		snap.Operations, snap.Errors, snap.CacheHits, snap.CacheMisses, snap.CacheSteps)
}
