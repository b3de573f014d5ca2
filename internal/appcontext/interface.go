// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than on
// the concrete App so they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/metricdocs"
)

// Interface defines the application context that commands need.
type Interface interface {
	// Engine returns the configured engine, creating it lazily.
	// It fails with a configuration error when the API is not configured.
	Engine() (metricdocs.Engine, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml).
	OutputFormat() string

	// OutputDir returns the root of the documentation tree.
	OutputDir() string

	// FileExtension returns the extension of entity pages.
	FileExtension() string

	// UpdateOnly reports whether sync runs default to incremental mode.
	UpdateOnly() bool

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
