// Package api is the client for the remote metric catalog.
package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/metricdocs/internal/transport"
	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/errors"
)

// Page is one page of the entity listing.
type Page struct {
	Data  []catalog.Record `json:"data"`
	Total int              `json:"total"`
	Page  int              `json:"page"`

	// Raw is the decoded response body, kept for shape checks.
	Raw map[string]any `json:"-"`
}

// Client reads the metric catalog and per-entity samples.
type Client struct {
	transport    *transport.Client
	sampleWindow time.Duration
	now          func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithSampleWindow sets how far back sample requests start.
func WithSampleWindow(d time.Duration) Option {
	return func(c *Client) { c.sampleWindow = d }
}

// WithClock overrides the clock used to compute sample start dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a client on top of t.
func New(t *transport.Client, opts ...Option) *Client {
	c := &Client{
		transport:    t,
		sampleWindow: constants.DefaultSampleWindow,
		now:          func() time.Time { return utc.Now().Time },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListEntities fetches one page of the catalog listing.
func (c *Client) ListEntities(ctx context.Context, page, pageSize int) (*Page, error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}

	var raw json.RawMessage
	if err := c.get(ctx, constants.MetricsEndpoint, query, &raw); err != nil {
		return nil, err
	}

	var out Page
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.WrapParse("json", constants.MetricsEndpoint, err)
	}
	if err := json.Unmarshal(raw, &out.Raw); err != nil {
		return nil, errors.WrapParse("json", constants.MetricsEndpoint, err)
	}
	return &out, nil
}

// SampleEndpoint returns the sample data path for an entity.
func SampleEndpoint(id string) string {
	return constants.MetricsEndpoint + "/" + url.PathEscape(id) + "/data"
}

// SampleParams returns the query parameters of a sample request.
func (c *Client) SampleParams(e *catalog.Entity) map[string]string {
	return map[string]string{
		"project":    e.CollectionKey(),
		"start_date": c.now().Add(-c.sampleWindow).Format(constants.DateFormat),
	}
}

// FetchSample fetches the recent data points of one entity. The decoded
// body is returned as-is; structural checks are up to the caller.
func (c *Client) FetchSample(ctx context.Context, e *catalog.Entity) (any, error) {
	return c.GetJSON(ctx, SampleEndpoint(e.ID()), c.SampleParams(e))
}

// GetJSON fetches an arbitrary catalog endpoint and decodes it.
func (c *Client) GetJSON(ctx context.Context, path string, params map[string]string) (any, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	var out any
	if err := c.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	resp, err := c.transport.Get(ctx, path, query)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, target)
}
