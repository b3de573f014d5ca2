// Package docs renders one documentation page per catalog entity.
//
// Pages are written to <output>/<collection>/<identifier><ext>, the layout
// the output scanner reads back.
package docs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/datacache"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/logging"
)

// defaultConcurrency bounds how many collections render at once.
const defaultConcurrency = 4

// Generator handles documentation generation
type Generator struct {
	outputDir   string
	ext         string
	concurrency int
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithOutputDir sets the output directory for generated documentation
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithExtension sets the page file extension, including the dot.
func WithExtension(ext string) Option {
	return func(g *Generator) {
		if ext != "" {
			g.ext = ext
		}
	}
}

// WithConcurrency sets how many collections render at once.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// New creates a new documentation generator
func New(opts ...Option) *Generator {
	g := &Generator{
		outputDir:   constants.DefaultOutputDir,
		ext:         constants.DefaultFileExtension,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stats summarizes a generation run.
type Stats struct {
	Pages  int
	Failed int
}

// PagePath returns the path of an entity's page.
func (g *Generator) PagePath(e *catalog.Entity) string {
	return filepath.Join(g.outputDir, e.CollectionKey(), e.ID()+g.ext)
}

// Generate writes a page for every entity in cat, using cached sample
// payloads when present. A page that cannot be written is logged and
// skipped; the joined page errors are returned alongside the stats.
func (g *Generator) Generate(ctx context.Context, cat *catalog.Catalog, cache *datacache.Cache) (Stats, error) {
	ctx = logging.WithStage(ctx, "render")
	logger := logging.FromContext(ctx)

	var (
		mu    sync.Mutex
		stats Stats
		errs  []error
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for _, col := range cat.Collections() {
		eg.Go(func() error {
			colCtx := logging.WithCollection(ctx, col.Slug)
			written, failed := g.generateCollection(colCtx, col, cache)

			mu.Lock()
			defer mu.Unlock()
			stats.Pages += written
			stats.Failed += len(failed)
			errs = append(errs, failed...)
			return nil
		})
	}
	_ = eg.Wait()

	logger.Info().Int("pages", stats.Pages).Int("failed", stats.Failed).Str("output", g.outputDir).
		Msg("Generated documentation")
	return stats, errors.Join(errs...)
}

func (g *Generator) generateCollection(ctx context.Context, col *catalog.Collection, cache *datacache.Cache) (int, []error) {
	logger := logging.FromContext(ctx)

	dir := filepath.Join(g.outputDir, col.Slug)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		err = errors.WrapIO("create", dir, err)
		logger.Warn().Err(err).Msg("Failed to create collection directory")
		return 0, []error{err}
	}

	written := 0
	var errs []error
	for _, e := range col.Entities() {
		if err := g.writePage(e, cache); err != nil {
			logger.Warn().Err(err).Str("entity", e.Key().String()).Msg("Failed to write page")
			errs = append(errs, err)
			continue
		}
		written++
	}
	return written, errs
}

func (g *Generator) writePage(e *catalog.Entity, cache *datacache.Cache) error {
	payload, _ := cache.Get(e.Key())
	content, err := renderPage(e, payload)
	if err != nil {
		return errors.WrapParse("markdown", e.Key().String(), err)
	}
	path := g.PagePath(e)
	return errors.WrapIO("write", path, os.WriteFile(path, []byte(content), constants.FilePermissions))
}
