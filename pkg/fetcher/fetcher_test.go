package fetcher_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/internal/api"
	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/fetcher"
	"github.com/agentstation/metricdocs/pkg/snapshots"
)

// fakeLister serves records in pages and can fail on a given page.
type fakeLister struct {
	records []catalog.Record
	failOn  int
	calls   []int
}

func (l *fakeLister) ListEntities(_ context.Context, page, pageSize int) (*api.Page, error) {
	l.calls = append(l.calls, page)
	if page == l.failOn {
		return nil, errors.NewAPIError("/metrics", 503, "unavailable")
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(l.records))
	var data []catalog.Record
	if start < len(l.records) {
		data = l.records[start:end]
	}
	return &api.Page{
		Data:  data,
		Total: len(l.records),
		Page:  page,
		Raw:   map[string]any{"data": []any{}, "total": float64(len(l.records)), "page": float64(page)},
	}, nil
}

func makeRecords(n int) []catalog.Record {
	out := make([]catalog.Record, n)
	for i := range out {
		out[i] = catalog.Record{
			ID:          fmt.Sprintf("metric_%03d", i),
			Collection:  fmt.Sprintf("project_%d", i%3),
			Name:        fmt.Sprintf("Metric %d", i),
			Kind:        catalog.KindNumber,
			LastUpdated: "2025-01-01T00:00:00Z",
		}
	}
	return out
}

func TestFetchAllPaginates(t *testing.T) {
	lister := &fakeLister{records: makeRecords(250)}
	f := fetcher.New(lister, fetcher.WithPageSize(100), fetcher.WithComparisonSnapshot(""))

	result, err := f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, lister.calls)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 250, result.Catalog.Len())
	assert.Len(t, result.Catalog.Collections(), 3)
	assert.True(t, result.ShouldContinue)
	assert.False(t, result.Partial())
}

func TestFetchAllKeepsPartialResults(t *testing.T) {
	lister := &fakeLister{records: makeRecords(250), failOn: 2}
	f := fetcher.New(lister, fetcher.WithPageSize(100), fetcher.WithComparisonSnapshot(""))

	result, err := f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, result.Partial())
	assert.True(t, errors.IsTransport(result.PageErr))
	assert.Equal(t, 100, result.Catalog.Len())
}

func TestFetchAllFirstPageFailure(t *testing.T) {
	f := fetcher.New(&fakeLister{records: makeRecords(10), failOn: 1}, fetcher.WithComparisonSnapshot(""))
	_, err := f.FetchAll(context.Background(), false)
	assert.True(t, errors.IsTransport(err))
}

func TestFetchAllEmptyCatalog(t *testing.T) {
	lister := &fakeLister{}
	f := fetcher.New(lister, fetcher.WithComparisonSnapshot(""))

	result, err := f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Catalog.Len())
	assert.Equal(t, []int{1}, lister.calls)
}

func TestFetchAllIncrementalUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	records := makeRecords(20)

	// A previous run stored the same catalog in a different order, with
	// timestamps and without indentation.
	stored, err := json.Marshal(reversed(records))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, stored, 0o644))

	for i := range records {
		records[i].LastUpdated = "2025-06-01T00:00:00Z"
	}
	f := fetcher.New(&fakeLister{records: records}, fetcher.WithComparisonSnapshot(path))
	result, err := f.FetchAll(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, result.ShouldContinue)
	assert.True(t, result.SnapshotWritten)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, string(stored), string(after), "snapshot is rewritten even when unchanged")
	assert.NotContains(t, string(after), "last_updated")
}

func TestFetchAllIncrementalChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	records := makeRecords(5)

	_, err := fetcher.New(&fakeLister{records: records}, fetcher.WithComparisonSnapshot(path)).
		FetchAll(context.Background(), true)
	require.NoError(t, err)

	changed := makeRecords(5)
	changed[3].Description = "now documented"
	result, err := fetcher.New(&fakeLister{records: changed}, fetcher.WithComparisonSnapshot(path)).
		FetchAll(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, result.ShouldContinue)
}

func TestFetchAllIncrementalWithoutSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	result, err := fetcher.New(&fakeLister{records: makeRecords(3)}, fetcher.WithComparisonSnapshot(path)).
		FetchAll(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, result.ShouldContinue)
	assert.FileExists(t, path)
}

func TestFetchAllReadOnlyLeavesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	stored, err := json.Marshal(reversed(makeRecords(4)))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, stored, 0o644))

	f := fetcher.New(&fakeLister{records: makeRecords(4)},
		fetcher.WithComparisonSnapshot(path),
		fetcher.WithReadOnly(true))
	result, err := f.FetchAll(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, result.ShouldContinue)
	assert.False(t, result.SnapshotWritten)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(stored), string(after))
}

func TestFetchAllSnapshotWriteFailureIsNotFatal(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	f := fetcher.New(&fakeLister{records: makeRecords(3)},
		fetcher.WithComparisonSnapshot(filepath.Join(blocker, "catalog.json")))
	result, err := f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.SnapshotWritten)
	assert.Equal(t, 3, result.Catalog.Len())
}

func TestFetchAllChecksListShape(t *testing.T) {
	store := snapshots.NewStore(t.TempDir())
	f := fetcher.New(&fakeLister{records: makeRecords(3)},
		fetcher.WithComparisonSnapshot(""),
		fetcher.WithShapeChecker(snapshots.NewChecker(store)))

	result, err := f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, result.Shape)
	assert.True(t, result.Shape.IsNew)

	result, err = f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.Shape.IsNew)
	assert.False(t, result.Shape.HasDrift())
}

func reversed(in []catalog.Record) []catalog.Record {
	out := make([]catalog.Record, len(in))
	for i, r := range in {
		r.LastUpdated = "2024-12-01T00:00:00Z"
		out[len(in)-1-i] = r
	}
	return out
}

