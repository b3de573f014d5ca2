// Package app provides the application context and dependency management
// for the metricdocs CLI. It centralizes configuration, logging and the
// lazily created engine shared by every command.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/metricdocs"
	"github.com/agentstation/metricdocs/internal/appcontext"
)

// App represents the metricdocs application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu     sync.Mutex
	engine metricdocs.Engine
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and can be replaced with
// functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string { return a.config.Format }

// OutputDir returns the root of the documentation tree.
func (a *App) OutputDir() string { return a.config.OutputDir }

// FileExtension returns the extension of entity pages.
func (a *App) FileExtension() string { return a.config.FileExtension }

// UpdateOnly reports whether sync defaults to incremental mode.
func (a *App) UpdateOnly() bool { return a.config.UpdateOnly }

// Engine returns the engine, creating it on first use. A missing API
// setting is reported as a configuration error before any stage runs.
func (a *App) Engine() (metricdocs.Engine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}
	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	engine, err := metricdocs.New(a.engineOptions()...)
	if err != nil {
		return nil, err
	}
	a.engine = engine
	return engine, nil
}

// engineOptions constructs engine options from the app configuration.
func (a *App) engineOptions() []metricdocs.Option {
	c := a.config
	opts := []metricdocs.Option{
		metricdocs.WithAPI(metricdocs.APIConfig{
			URL:          c.APIURL,
			Key:          c.APIKey,
			Scheme:       c.AuthScheme,
			Header:       c.AuthHeader,
			SampleWindow: c.SampleWindow,
		}),
		metricdocs.WithOutputDir(c.OutputDir),
		metricdocs.WithFileExtension(c.FileExtension),
		metricdocs.WithComparisonSnapshot(c.ComparisonSnapshot),
		metricdocs.WithShapesDir(c.ShapesDir),
		metricdocs.WithReportPath(c.ReportPath),
	}
	if c.PageSize > 0 {
		opts = append(opts, metricdocs.WithPageSize(c.PageSize))
	}
	if c.BatchSize > 0 {
		opts = append(opts, metricdocs.WithBatchSize(c.BatchSize))
	}
	if c.SampleTimeout > 0 {
		opts = append(opts, metricdocs.WithSampleTimeout(c.SampleTimeout))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a prebuilt engine (useful for testing).
func WithEngine(engine metricdocs.Engine) Option {
	return func(a *App) error {
		a.engine = engine
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
