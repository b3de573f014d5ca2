// Package fetcher pages through the remote catalog, builds the in-memory
// catalog and decides whether an incremental run has anything to do.
package fetcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/agentstation/metricdocs/internal/api"
	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/logging"
	"github.com/agentstation/metricdocs/pkg/snapshots"
)

// Lister returns one page of the catalog listing.
type Lister interface {
	ListEntities(ctx context.Context, page, pageSize int) (*api.Page, error)
}

// Fetcher collects the full catalog.
type Fetcher struct {
	lister       Lister
	pageSize     int
	snapshotPath string
	readOnly     bool
	checker      *snapshots.Checker
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithPageSize sets the listing page size.
func WithPageSize(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithComparisonSnapshot sets the path of the flat catalog snapshot used by
// incremental runs. An empty path disables the snapshot.
func WithComparisonSnapshot(path string) Option {
	return func(f *Fetcher) { f.snapshotPath = path }
}

// WithReadOnly compares against the snapshot without rewriting it.
func WithReadOnly(readOnly bool) Option {
	return func(f *Fetcher) { f.readOnly = readOnly }
}

// WithShapeChecker enables drift checks on the first listing page.
func WithShapeChecker(c *snapshots.Checker) Option {
	return func(f *Fetcher) { f.checker = c }
}

// New creates a fetcher reading from lister.
func New(lister Lister, opts ...Option) *Fetcher {
	f := &Fetcher{
		lister:       lister,
		pageSize:     constants.DefaultPageSize,
		snapshotPath: constants.DefaultComparisonSnapshot,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Result is the outcome of FetchAll.
type Result struct {
	Catalog *catalog.Catalog

	// ShouldContinue is false only in incremental mode when the fetched
	// catalog equals the stored snapshot.
	ShouldContinue bool

	Pages   int
	Total   int
	Records int

	// PageErr is the error that ended pagination early, if any. Pages
	// collected before it are kept.
	PageErr error

	SnapshotWritten bool
	Shape           *snapshots.CheckResult
}

// Partial reports whether pagination stopped before the reported total.
func (r *Result) Partial() bool { return r.PageErr != nil }

// FetchAll pages through the catalog. It fails only when not a single page
// could be read.
func (f *Fetcher) FetchAll(ctx context.Context, updateOnly bool) (*Result, error) {
	ctx = logging.WithStage(ctx, "fetch")
	logger := logging.FromContext(ctx)

	result := &Result{ShouldContinue: true}
	var records []catalog.Record

	for page := 1; ; page++ {
		resp, err := f.lister.ListEntities(ctx, page, f.pageSize)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			logger.Warn().Err(err).Int("page", page).Int("collected", len(records)).
				Msg("Page fetch failed, continuing with partial catalog")
			result.PageErr = err
			break
		}
		result.Pages++
		result.Total = resp.Total
		records = append(records, resp.Data...)

		if page == 1 {
			f.checkShape(ctx, result, resp)
		}
		if len(resp.Data) == 0 || len(records) >= resp.Total {
			break
		}
	}

	result.Catalog = catalog.Build(records)
	result.Records = len(records)
	for _, dup := range result.Catalog.Duplicates() {
		logger.Warn().Str("entity", dup.String()).Msg("Duplicate entity key, keeping first")
	}

	if f.snapshotPath != "" {
		fresh := catalog.Strip(result.Catalog.Records())
		if updateOnly {
			result.ShouldContinue = f.changed(ctx, fresh)
		}
		switch err := f.persist(fresh); {
		case err != nil:
			logger.Warn().Err(err).Str("path", f.snapshotPath).Msg("Failed to write comparison snapshot")
		case !f.readOnly:
			result.SnapshotWritten = true
		}
	}

	logger.Info().
		Int("pages", result.Pages).
		Int("entities", result.Catalog.Len()).
		Int("collections", len(result.Catalog.Collections())).
		Bool("continue", result.ShouldContinue).
		Msg("Fetched catalog")
	return result, nil
}

// changed compares the fresh records with the stored snapshot. Any read or
// decode problem counts as a change.
func (f *Fetcher) changed(ctx context.Context, fresh []catalog.Record) bool {
	logger := logging.FromContext(ctx)

	stored, err := readSnapshot(f.snapshotPath)
	if err != nil {
		if !errors.IsNotFound(err) {
			logger.Warn().Err(err).Msg("Ignoring unreadable comparison snapshot")
		}
		return true
	}

	a, errA := json.Marshal(catalog.Strip(stored))
	b, errB := json.Marshal(fresh)
	if errA != nil || errB != nil {
		return true
	}
	if bytes.Equal(a, b) {
		logger.Info().Msg("Catalog unchanged since last run")
		return false
	}
	return true
}

func (f *Fetcher) checkShape(ctx context.Context, result *Result, page *api.Page) {
	if f.checker == nil || page.Raw == nil {
		return
	}
	params := map[string]string{"page_size": strconv.Itoa(f.pageSize)}
	check, err := f.checker.Check(ctx, constants.MetricsEndpoint, params, page.Raw)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Shape check failed")
		return
	}
	result.Shape = check
}

func (f *Fetcher) persist(records []catalog.Record) error {
	if f.readOnly {
		return nil
	}
	return writeSnapshot(f.snapshotPath, records)
}

func readSnapshot(path string) ([]catalog.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("comparison snapshot", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return records, nil
}

func writeSnapshot(path string, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}
