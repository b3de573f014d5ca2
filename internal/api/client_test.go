package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/internal/api"
	"github.com/agentstation/metricdocs/internal/transport"
	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/errors"
)

const baseURL = "https://api.metrics.test"

func newClient(t *testing.T, opts ...api.Option) *api.Client {
	t.Helper()
	hc := &http.Client{}
	gock.InterceptClient(hc)
	t.Cleanup(func() {
		gock.RestoreClient(hc)
		gock.OffAll()
	})
	tc := transport.New(baseURL,
		transport.WithHTTPClient(hc),
		transport.WithAuth(&transport.BearerAuth{}, "secret"),
	)
	return api.New(tc, opts...)
}

func TestListEntities(t *testing.T) {
	c := newClient(t)
	gock.New(baseURL).
		Get("/metrics").
		MatchParam("page", "2").
		MatchParam("page_size", "100").
		MatchHeader("Authorization", "Bearer secret").
		Reply(200).
		JSON(map[string]any{
			"data": []map[string]any{
				{"id": "fees", "project": "bitcoin", "project_name": "Bitcoin", "type": "currency", "last_updated": "2025-01-01"},
			},
			"total": 101,
			"page":  2,
		})

	page, err := c.ListEntities(context.Background(), 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 101, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, catalog.NewKey("bitcoin", "fees"), page.Data[0].Key())
	assert.Equal(t, catalog.ValueKind("currency"), page.Data[0].Kind)
	assert.Contains(t, page.Raw, "data")
	assert.True(t, gock.IsDone())
}

func TestListEntitiesServerError(t *testing.T) {
	c := newClient(t)
	gock.New(baseURL).Get("/metrics").Reply(500).BodyString("boom")

	_, err := c.ListEntities(context.Background(), 1, 100)
	assert.True(t, errors.IsTransport(err))
}

func TestFetchSample(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC) }
	c := newClient(t, api.WithClock(clock), api.WithSampleWindow(30*24*time.Hour))

	gock.New(baseURL).
		Get("/metrics/fees/data").
		MatchParam("project", "bitcoin").
		MatchParam("start_date", "2025-03-01").
		Reply(200).
		JSON(map[string]any{"bitcoin": []map[string]any{{"date": "2025-03-01", "value": 1.5}}})

	e := catalog.NewEntity(catalog.Record{ID: "fees", Collection: "bitcoin"})
	out, err := c.FetchSample(context.Background(), e)
	require.NoError(t, err)

	body, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, body, "bitcoin")
}

func TestSampleEndpointEscapes(t *testing.T) {
	assert.Equal(t, "/metrics/fees/data", api.SampleEndpoint("fees"))
	assert.Equal(t, "/metrics/a%20b/data", api.SampleEndpoint("a b"))
}
