package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/metricdocs"
	"github.com/agentstation/metricdocs/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding field.
// Unset fields return defaults.
type Mock struct {
	EngineFunc func() (metricdocs.Engine, error)
	LoggerFunc func() *zerolog.Logger

	Format    string
	Dir       string
	Extension string
	Update    bool
}

// Engine returns an engine using the mock function or nil.
func (m *Mock) Engine() (metricdocs.Engine, error) {
	if m.EngineFunc != nil {
		return m.EngineFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the configured format or json.
func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "json"
	}
	return m.Format
}

// OutputDir returns the configured directory or the default.
func (m *Mock) OutputDir() string {
	if m.Dir == "" {
		return constants.DefaultOutputDir
	}
	return m.Dir
}

// FileExtension returns the configured extension or the default.
func (m *Mock) FileExtension() string {
	if m.Extension == "" {
		return constants.DefaultFileExtension
	}
	return m.Extension
}

// UpdateOnly returns the configured incremental default.
func (m *Mock) UpdateOnly() bool { return m.Update }

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "unknown".
func (m *Mock) BuiltBy() string { return "unknown" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
