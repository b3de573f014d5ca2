package metricdocs

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/datacache"
	"github.com/agentstation/metricdocs/pkg/fetcher"
	"github.com/agentstation/metricdocs/pkg/lifecycle"
	"github.com/agentstation/metricdocs/pkg/logging"
	"github.com/agentstation/metricdocs/pkg/reconciler"
	"github.com/agentstation/metricdocs/pkg/report"
	"github.com/agentstation/metricdocs/pkg/sync"
	"github.com/agentstation/metricdocs/pkg/validator"
)

// Sync fetches the catalog, reconciles the output tree against it,
// validates every entity, renders pages and writes the validation report.
// Per-entity and per-file failures are part of the result; only option,
// fetch and cancellation failures are returned as errors.
func (e *engine) Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error) {
	// Step 1: Parse and validate options
	options := sync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	ctx, cancel := withTimeout(ctx, options)
	defer cancel()
	ctx = logging.WithStage(ctx, "sync")
	logger := logging.FromContext(ctx)

	// Step 3: Fetch the catalog and decide whether there is anything to do
	fetched, err := e.fetcher(e.config.comparisonSnapshot, options.DryRun).FetchAll(ctx, options.UpdateOnly)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	result := newResult(fetched, options, e.config.outputDir)
	if !fetched.ShouldContinue {
		logger.Info().Int("entities", result.Entities).Msg("Catalog unchanged, skipping run")
		return result, nil
	}
	cat := fetched.Catalog

	// Step 4: Scan the output tree and reconcile it with the catalog
	existing := e.scanner().Scan(ctx, e.config.outputDir)
	current := cat.Keys()
	diff := reconciler.Diff(existing, current)
	result.Added, result.Removed, result.Unchanged = diff.Added, diff.Removed, diff.Unchanged
	e.hooks.triggerReconcile(cat, diff)

	if diff.HasChanges() {
		logger.Info().
			Int("added", len(diff.Added)).
			Int("removed", len(diff.Removed)).
			Int("unchanged", diff.Unchanged).
			Msg("Changes detected")
	} else {
		logger.Info().Msg("No changes detected")
	}

	// Step 5: Remove stale pages while validating, the two share no state
	var (
		removed   *lifecycle.Result
		validated *validator.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	if !options.DryRun {
		g.Go(func() error {
			manager := lifecycle.New(e.config.outputDir, lifecycle.WithExtension(e.config.fileExtension))
			removed = manager.ReconcileOutput(gctx, existing, current)
			return nil
		})
	}
	if !options.SkipValidation {
		g.Go(func() error {
			var err error
			validated, err = e.validator().Validate(gctx, cat.Entities())
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	if removed != nil {
		result.RemovedFiles = removed.RemovedFiles
		result.RemovedDirs = removed.RemovedDirs
		result.FileErrors = len(removed.Errors)
	}
	applyValidation(result, validated)

	// Step 6: Render pages from the sampled data
	if !options.DryRun && !options.SkipPages {
		e.render(ctx, cat, validated, result)
	}

	// Step 7: Write or clear the validation report
	if !options.DryRun && validated != nil {
		e.writeReport(ctx, cat, validated, result)
	} else if options.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - output tree untouched")
	}

	logger.Info().Int("exit_code", result.ExitCode()).Msg(result.Summary())
	return result, nil
}

// Validate fetches the catalog and validates it. It writes only the
// validation report; the comparison snapshot and output tree are left as
// they are.
func (e *engine) Validate(ctx context.Context) (*sync.Result, error) {
	ctx = logging.WithStage(ctx, "sync")

	fetched, err := e.fetcher("", false).FetchAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	result := newResult(fetched, sync.Defaults(), e.config.outputDir)

	validated, err := e.validator().Validate(ctx, fetched.Catalog.Entities())
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	applyValidation(result, validated)
	e.writeReport(ctx, fetched.Catalog, validated, result)
	return result, nil
}

// render writes entity pages. Page failures are logged and counted.
func (e *engine) render(ctx context.Context, cat *catalog.Catalog, validated *validator.Result, result *sync.Result) {
	if e.config.renderer == nil {
		return
	}
	cache := datacache.New()
	if validated != nil {
		cache = validated.Cache
	}

	written, err := e.config.renderer.Render(ctx, cat, cache)
	result.PagesWritten = written
	if err != nil {
		result.PageErrors = countErrors(err)
		logging.FromContext(ctx).Warn().Err(err).Int("failed", result.PageErrors).Msg("Some pages could not be rendered")
	}
}

// writeReport writes the validation report. A failed write is logged; the
// run's other effects still stand.
func (e *engine) writeReport(ctx context.Context, cat *catalog.Catalog, validated *validator.Result, result *sync.Result) {
	if e.config.reportPath == "" {
		return
	}
	stats := report.Stats{
		Entities:      cat.Len(),
		Checked:       validated.TotalChecked,
		FailedFetches: validated.FailedFetches,
		Batches:       validated.Batches,
	}
	written, err := report.Write(e.config.reportPath, validated.Issues, stats)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", e.config.reportPath).Msg("Failed to write validation report")
		return
	}
	result.ReportWritten = written
	if written {
		result.ReportPath = e.config.reportPath
	}
}

// ============================================================================
// Helpers
// ============================================================================

func newResult(fetched *fetcher.Result, options *sync.Options, outputDir string) *sync.Result {
	result := &sync.Result{
		Entities:     fetched.Catalog.Len(),
		Collections:  len(fetched.Catalog.Collections()),
		FetchedPages: fetched.Pages,
		Partial:      fetched.Partial(),
		Skipped:      !fetched.ShouldContinue,
		DryRun:       options.DryRun,
		OutputDir:    outputDir,
	}
	if fetched.Shape != nil && fetched.Shape.HasDrift() {
		result.ShapeDrift = fetched.Shape.Changes
	}
	return result
}

func applyValidation(result *sync.Result, validated *validator.Result) {
	if validated == nil {
		return
	}
	result.Issues = validated.Issues
	result.Checked = validated.TotalChecked
	result.FailedFetches = validated.FailedFetches
	result.Batches = validated.Batches
}

func withTimeout(ctx context.Context, options *sync.Options) (context.Context, context.CancelFunc) {
	if options.Timeout > 0 {
		return context.WithTimeout(ctx, options.Timeout)
	}
	return ctx, func() {}
}

// countErrors counts the members of a joined error.
func countErrors(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
