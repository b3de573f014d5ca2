package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/scanner"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestScanBothLayouts(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"chains/fees.mdx",
		"chains/bitcoin/txcount.mdx",
		"funds/aum.mdx",
		"funds/index.mdx",
		"toplevel.mdx",
		"a/b/c/too_deep.mdx",
		"chains/notes.md",
	)

	keys := scanner.New().Scan(context.Background(), root)
	assert.Equal(t, []catalog.Key{"chains/fees", "chains/txcount", "funds/aum"}, keys.Sorted())
}

func TestScanMissingRoot(t *testing.T) {
	keys := scanner.New().Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 0, keys.Len())
}

func TestScanRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, nil, 0o644))
	assert.Equal(t, 0, scanner.New().Scan(context.Background(), root).Len())
}

func TestScanCustomExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "chains/fees.md", "chains/other.mdx")

	keys := scanner.New(scanner.WithExtension(".md")).Scan(context.Background(), root)
	assert.Equal(t, []catalog.Key{"chains/fees"}, keys.Sorted())
}

func TestKeyFor(t *testing.T) {
	s := scanner.New()
	tests := []struct {
		rel  string
		want catalog.Key
		ok   bool
	}{
		{"chains/fees.mdx", "chains/fees", true},
		{"chains/bitcoin/fees.mdx", "chains/fees", true},
		{"Chains/Fees.mdx", "Chains/Fees", true},
		{"fees.mdx", "", false},
		{"a/b/c/fees.mdx", "", false},
		{"chains/index.mdx", "", false},
		{"chains/fees.json", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got, ok := s.KeyFor(tt.rel)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
