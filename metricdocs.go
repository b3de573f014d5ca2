// Package metricdocs keeps a generated documentation tree in sync with a
// remote metrics catalog. An Engine fetches the catalog, reconciles it
// against the pages already on disk, removes stale pages, samples every
// entity for structural problems and renders fresh pages plus a
// validation report.
package metricdocs

import (
	"context"
	"fmt"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/fetcher"
	"github.com/agentstation/metricdocs/pkg/scanner"
	"github.com/agentstation/metricdocs/pkg/snapshots"
	"github.com/agentstation/metricdocs/pkg/sync"
	"github.com/agentstation/metricdocs/pkg/validator"
)

// Source is the remote catalog an Engine reads from.
type Source interface {
	fetcher.Lister
	validator.Sampler

	// GetJSON fetches an arbitrary endpoint for shape checks.
	GetJSON(ctx context.Context, path string, params map[string]string) (any, error)
}

// Engine runs catalog reconciliation and validation.
type Engine interface {
	// Sync runs the full pipeline and reports what it did
	Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error)

	// Validate fetches the catalog and validates it without touching the output tree
	Validate(ctx context.Context) (*sync.Result, error)

	// Scan returns the entity keys present in the output tree
	Scan(ctx context.Context) catalog.KeySet

	// CheckShape compares the response shape of endpoint against its stored baseline
	CheckShape(ctx context.Context, endpoint string, params map[string]string) (*snapshots.CheckResult, error)

	// OnEntityAdded registers a callback for entities new to the output tree
	OnEntityAdded(EntityAddedHook)

	// OnEntityRemoved registers a callback for entities gone from the catalog
	OnEntityRemoved(EntityRemovedHook)
}

// engine is the internal implementation of the Engine interface
type engine struct {
	config *config
	hooks  *hooks
}

// New creates a new Engine with the given options.
func New(opts ...Option) (Engine, error) {
	e := &engine{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := e.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	if e.config.source == nil {
		return nil, errors.NewConfigError("engine", "a catalog source is required (WithAPI or WithSource)", nil)
	}
	if !e.config.rendererSet {
		e.config.renderer = newPageRenderer(e.config.outputDir, e.config.fileExtension)
	}

	return e, nil
}

// options applies the given options to the engine configuration.
func (e *engine) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e.config); err != nil {
			return err
		}
	}
	return nil
}

// Scan returns the entity keys present in the output tree.
func (e *engine) Scan(ctx context.Context) catalog.KeySet {
	return e.scanner().Scan(ctx, e.config.outputDir)
}

// CheckShape fetches endpoint and compares its shape with the stored baseline.
func (e *engine) CheckShape(ctx context.Context, endpoint string, params map[string]string) (*snapshots.CheckResult, error) {
	checker := e.checker()
	if checker == nil {
		return nil, errors.NewConfigError("shapes", "no shape snapshot directory configured", nil)
	}
	value, err := e.config.source.GetJSON(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return checker.Check(ctx, endpoint, params, value)
}

func (e *engine) scanner() *scanner.Scanner {
	return scanner.New(scanner.WithExtension(e.config.fileExtension))
}

func (e *engine) checker() *snapshots.Checker {
	if e.config.shapesDir == "" {
		return nil
	}
	return snapshots.NewChecker(snapshots.NewStore(e.config.shapesDir))
}

func (e *engine) validator() *validator.Validator {
	return validator.New(e.config.source,
		validator.WithBatchSize(e.config.batchSize),
		validator.WithTimeout(e.config.sampleTimeout),
		validator.WithNamingRules(e.config.namingRules),
	)
}

// fetcher builds the catalog fetcher. A dry run compares against the
// snapshot but never rewrites it or any shape baseline.
func (e *engine) fetcher(snapshot string, dryRun bool) *fetcher.Fetcher {
	opts := []fetcher.Option{
		fetcher.WithPageSize(e.config.pageSize),
		fetcher.WithComparisonSnapshot(snapshot),
		fetcher.WithReadOnly(dryRun),
	}
	if checker := e.checker(); checker != nil && !dryRun {
		opts = append(opts, fetcher.WithShapeChecker(checker))
	}
	return fetcher.New(e.config.source, opts...)
}
