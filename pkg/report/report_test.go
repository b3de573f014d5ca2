package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/pkg/report"
	"github.com/agentstation/metricdocs/pkg/validator"
)

func sampleIssues() []validator.Issue {
	return []validator.Issue{
		{Entity: "funds/aum", Collection: "funds", Code: validator.CodeFetchError, Message: "sample fetch failed: timeout", Count: 1},
		{Entity: "bitcoin/fees", Collection: "bitcoin", Code: validator.CodeMalformedPayload, Message: "point has no value field but has date, revenue_usd", Fragment: `{"date":"2025-01-01","revenue_usd":500}`, Count: 2},
		{Entity: "bitcoin/blocks", Collection: "bitcoin", Code: validator.CodeKindMismatch, Message: "a | b", Count: 1},
	}
}

func TestWriteGroupsByCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "validation-report.md")

	written, err := report.Write(path, sampleIssues(), report.Stats{Entities: 10, Checked: 10, FailedFetches: 1, Batches: 1})
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# Validation Report")
	assert.Contains(t, out, "Failed fetches: 1")
	assert.Contains(t, out, "## bitcoin")
	assert.Contains(t, out, "## funds")
	assert.Less(t, strings.Index(out, "## bitcoin"), strings.Index(out, "## funds"))
	assert.Less(t, strings.Index(out, "`blocks`"), strings.Index(out, "`fees`"))
	assert.Contains(t, out, "(x2)")
	assert.Contains(t, out, "revenue_usd")
}

func TestWriteWithoutIssuesRemovesStaleReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validation-report.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	written, err := report.Write(path, nil, report.Stats{})
	require.NoError(t, err)
	assert.False(t, written)
	assert.NoFileExists(t, path)

	// No report and nothing to remove.
	written, err = report.Write(path, []validator.Issue{}, report.Stats{})
	require.NoError(t, err)
	assert.False(t, written)
}
