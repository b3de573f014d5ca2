// Package sync provides options and results for a metricdocs sync run.
package sync

import (
	"time"

	"github.com/agentstation/metricdocs/pkg/errors"
)

// Options controls the overall orchestration in Engine.Sync().
type Options struct {
	// Orchestration control
	UpdateOnly bool          // Stop after fetching when the catalog equals the stored snapshot
	DryRun     bool          // Fetch, reconcile and validate without touching the output tree
	Timeout    time.Duration // Timeout for the entire run (0 means none)

	// Stage control
	SkipValidation bool // Do not sample entities or write the validation report
	SkipPages      bool // Do not render entity pages
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		UpdateOnly:     false,
		DryRun:         false,
		Timeout:        0,
		SkipValidation: false,
		SkipPages:      false,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	return nil
}

// WithUpdateOnly configures incremental mode.
func WithUpdateOnly(updateOnly bool) Option {
	return func(opts *Options) {
		opts.UpdateOnly = updateOnly
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithSkipValidation disables sampling and the validation report.
func WithSkipValidation(skip bool) Option {
	return func(opts *Options) {
		opts.SkipValidation = skip
	}
}

// WithSkipPages disables page rendering.
func WithSkipPages(skip bool) Option {
	return func(opts *Options) {
		opts.SkipPages = skip
	}
}
