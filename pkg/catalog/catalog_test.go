package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/pkg/catalog"
)

func record(collection, id string) catalog.Record {
	return catalog.Record{ID: id, Collection: collection, Name: id, Kind: catalog.KindNumber}
}

func TestBuildGroupsInFirstSeenOrder(t *testing.T) {
	c := catalog.Build([]catalog.Record{
		record("ethereum", "gas"),
		record("bitcoin", "fees"),
		record("ethereum", "txcount"),
		record("bitcoin", "hashrate"),
	})

	cols := c.Collections()
	require.Len(t, cols, 2)
	assert.Equal(t, "ethereum", cols[0].Slug)
	assert.Equal(t, "bitcoin", cols[1].Slug)
	assert.Equal(t, 4, c.Len())

	var ids []string
	for _, e := range c.Entities() {
		ids = append(ids, e.ID())
	}
	assert.Equal(t, []string{"gas", "txcount", "fees", "hashrate"}, ids)
}

func TestBuildDropsDuplicateKeys(t *testing.T) {
	c := catalog.Build([]catalog.Record{
		record("bitcoin", "fees"),
		record("bitcoin", "fees"),
		record("ethereum", "fees"),
	})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []catalog.Key{"bitcoin/fees"}, c.Duplicates())
}

func TestBackReferenceInvariant(t *testing.T) {
	c := catalog.Build([]catalog.Record{record("bitcoin", "fees"), record("bitcoin", "txcount")})

	for _, col := range c.Collections() {
		for _, e := range col.Entities() {
			assert.Same(t, col, e.Collection())
		}
	}

	bitcoin, ok := c.Collection("bitcoin")
	require.True(t, ok)
	other := catalog.NewCollection("other", "")
	e, ok := bitcoin.Entity("fees")
	require.True(t, ok)

	other.Add(e)
	assert.Same(t, other, e.Collection())
	_, stillThere := bitcoin.Entity("fees")
	assert.False(t, stillThere)
	assert.Equal(t, 1, bitcoin.Len())
}

func TestKeys(t *testing.T) {
	k := catalog.NewKey("bitcoin", "fees")
	assert.Equal(t, catalog.Key("bitcoin/fees"), k)

	col, id := k.Split()
	assert.Equal(t, "bitcoin", col)
	assert.Equal(t, "fees", id)

	set := catalog.NewKeySet("b/2", "a/1", "b/1")
	assert.True(t, set.Has("a/1"))
	assert.False(t, set.Has("A/1"))
	assert.Equal(t, []catalog.Key{"a/1", "b/1", "b/2"}, set.Sorted())
}

func TestEntityFindings(t *testing.T) {
	e := catalog.NewEntity(record("bitcoin", "fees"))
	e.AddFinding(catalog.Finding{Code: "kind_mismatch"})

	findings := e.Findings()
	require.Len(t, findings, 1)
	findings[0].Code = "mutated"
	assert.Equal(t, "kind_mismatch", e.Findings()[0].Code)
}

func TestStripRemovesTimestampAndSorts(t *testing.T) {
	a := record("ethereum", "gas")
	a.LastUpdated = "2025-01-02T00:00:00Z"
	b := record("bitcoin", "fees")
	b.LastUpdated = "2025-01-01T00:00:00Z"

	stripped := catalog.Strip([]catalog.Record{a, b})
	require.Len(t, stripped, 2)
	assert.Equal(t, "fees", stripped[0].ID)
	assert.Empty(t, stripped[0].LastUpdated)
	assert.Empty(t, stripped[1].LastUpdated)
	assert.Equal(t, "2025-01-02T00:00:00Z", a.LastUpdated, "input must not be mutated")
}

func TestValueKindKnown(t *testing.T) {
	assert.True(t, catalog.KindCurrency.Known())
	assert.False(t, catalog.ValueKind("usd").Known())
}
