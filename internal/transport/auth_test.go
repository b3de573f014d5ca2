package transport

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRequest(t *testing.T, raw string) *http.Request {
	t.Helper()
	u, err := url.Parse(raw)
	assert.NoError(t, err)
	return &http.Request{URL: u, Header: make(http.Header)}
}

func TestNoAuth(t *testing.T) {
	req := newRequest(t, "https://api.example.com/metrics")
	(&NoAuth{}).Apply(req, "secret")
	assert.Empty(t, req.Header)
}

func TestBearerAuth(t *testing.T) {
	req := newRequest(t, "https://api.example.com/metrics")
	(&BearerAuth{}).Apply(req, "secret")
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
}

func TestHeaderAuth(t *testing.T) {
	req := newRequest(t, "https://api.example.com/metrics")
	(&HeaderAuth{Header: "x-api-key"}).Apply(req, "secret")
	assert.Equal(t, "secret", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	req := newRequest(t, "https://api.example.com/metrics?page=2")
	(&QueryAuth{Param: "key"}).Apply(req, "secret")
	assert.Equal(t, "secret", req.URL.Query().Get("key"))
	assert.Equal(t, "2", req.URL.Query().Get("page"))

	// nil URL is ignored
	(&QueryAuth{Param: "key"}).Apply(&http.Request{Header: make(http.Header)}, "secret")
}

func TestAuthenticatorFor(t *testing.T) {
	assert.IsType(t, &BearerAuth{}, AuthenticatorFor("", ""))
	assert.IsType(t, &BearerAuth{}, AuthenticatorFor("bearer", ""))
	assert.IsType(t, &NoAuth{}, AuthenticatorFor("none", ""))
	assert.Equal(t, &HeaderAuth{Header: "X-API-Key"}, AuthenticatorFor("header", ""))
	assert.Equal(t, &QueryAuth{Param: "token"}, AuthenticatorFor("query", "token"))
}
