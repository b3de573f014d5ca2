package metricdocs

import (
	"context"

	"github.com/agentstation/metricdocs/internal/tools/docs"
	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/datacache"
)

// Renderer writes one page per catalog entity into the output tree. It
// must use the same <collection>/<identifier><ext> layout the scanner
// reads back.
type Renderer interface {
	Render(ctx context.Context, cat *catalog.Catalog, cache *datacache.Cache) (int, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, cat *catalog.Catalog, cache *datacache.Cache) (int, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, cat *catalog.Catalog, cache *datacache.Cache) (int, error) {
	return f(ctx, cat, cache)
}

// pageRenderer renders pages with the docs generator.
type pageRenderer struct {
	generator *docs.Generator
}

func newPageRenderer(outputDir, ext string) *pageRenderer {
	return &pageRenderer{
		generator: docs.New(docs.WithOutputDir(outputDir), docs.WithExtension(ext)),
	}
}

func (r *pageRenderer) Render(ctx context.Context, cat *catalog.Catalog, cache *datacache.Cache) (int, error) {
	stats, err := r.generator.Generate(ctx, cat, cache)
	return stats.Pages, err
}
