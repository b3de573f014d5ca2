package docs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/datacache"
	"github.com/agentstation/metricdocs/pkg/scanner"
)

func TestNew(t *testing.T) {
	gen := New()
	assert.Equal(t, "docs/metrics", gen.outputDir)
	assert.Equal(t, ".mdx", gen.ext)

	gen = New(WithOutputDir("/custom/path"), WithExtension(".md"), WithConcurrency(2))
	assert.Equal(t, "/custom/path", gen.outputDir)
	assert.Equal(t, ".md", gen.ext)
	assert.Equal(t, 2, gen.concurrency)
}

func testCatalog() *catalog.Catalog {
	return catalog.Build([]catalog.Record{
		{ID: "fees_usd", Collection: "bitcoin", CollectionName: "Bitcoin", Name: "Fees", Description: "Daily fees.", Kind: catalog.KindCurrency, Category: "chain", Interval: "1d"},
		{ID: "txcount", Collection: "bitcoin", Name: "Transactions", Kind: catalog.KindCount},
		{ID: "aum", Collection: "ark", Name: "", Kind: catalog.KindNumber, Category: "fund"},
	})
}

func TestGenerateWritesScannableLayout(t *testing.T) {
	dir := t.TempDir()
	cat := testCatalog()

	stats, err := New(WithOutputDir(dir)).Generate(context.Background(), cat, datacache.New())
	require.NoError(t, err)
	assert.Equal(t, Stats{Pages: 3}, stats)

	keys := scanner.New().Scan(context.Background(), dir)
	assert.Equal(t, cat.Keys().Sorted(), keys.Sorted())
}

func TestGeneratePageContent(t *testing.T) {
	dir := t.TempDir()
	cat := testCatalog()
	cache := datacache.New()
	cache.Set("bitcoin/fees_usd", map[string]any{
		"bitcoin": []any{
			map[string]any{"date": "2025-01-01", "value": 1250.5},
			map[string]any{"date": "2025-01-02", "value": nil},
		},
	})

	_, err := New(WithOutputDir(dir)).Generate(context.Background(), cat, cache)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bitcoin", "fees_usd.mdx"))
	require.NoError(t, err)
	content := string(data)

	require.True(t, strings.HasPrefix(content, "---\n"))
	parts := strings.SplitN(content, "---\n", 3)
	require.Len(t, parts, 3)

	var fm pageFrontMatter
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &fm))
	assert.Equal(t, "Fees", fm.Title)
	assert.Equal(t, "fees_usd", fm.Identifier)
	assert.Equal(t, "bitcoin", fm.Collection)
	assert.Equal(t, "Bitcoin", fm.CollectionName)
	assert.Equal(t, "chain", fm.Classification)
	assert.Equal(t, "currency", fm.Kind)

	assert.Contains(t, parts[2], "# Fees")
	assert.Contains(t, parts[2], "Daily fees.")
	assert.Contains(t, parts[2], "2025-01-01")
	assert.Contains(t, parts[2], "1250.5")
	assert.Contains(t, parts[2], "Currency")
}

func TestGeneratePageWithoutSample(t *testing.T) {
	dir := t.TempDir()
	_, err := New(WithOutputDir(dir)).Generate(context.Background(), testCatalog(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "ark", "aum.mdx"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# aum")
	assert.Contains(t, string(data), "No sample data available.")
}

func TestGenerateSkipsUnwritableCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ark"), nil, 0o644))

	stats, err := New(WithOutputDir(dir)).Generate(context.Background(), testCatalog(), nil)
	assert.Error(t, err)
	assert.Equal(t, 2, stats.Pages)
	assert.Equal(t, 1, stats.Failed)
}

func TestSampleRows(t *testing.T) {
	points := make([]any, 10)
	for i := range points {
		points[i] = map[string]any{"date": "d", "value": float64(i)}
	}
	rows := sampleRows("BTC", map[string]any{"btc": points})
	assert.Len(t, rows, 5)
	assert.Equal(t, []string{"d", "0"}, rows[0])

	assert.Len(t, sampleRows("btc", map[string]any{"btc": map[string]any{"value": "x"}}), 1)
	assert.Nil(t, sampleRows("btc", []any{}))
}
