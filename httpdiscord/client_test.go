package httpdiscord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwich-go/corrivalry/ratelimit"
)

func TestGatewayBot_TicketsThroughLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-bucket", "abcd")
		w.Header().Set("x-ratelimit-limit", "1")
		w.Header().Set("x-ratelimit-remaining", "0")
		w.Header().Set("x-ratelimit-reset", "1.0")
		w.Header().Set("x-ratelimit-reset-after", "0.001")
		w.Write([]byte(`{"url":"wss://gateway.example","shards":2,"session_start_limit":{"total":1000,"remaining":999,"reset_after":0,"max_concurrency":1}}`))
	}))
	defer srv.Close()

	limiter := ratelimit.New()
	c := New("abc", http.DefaultClient, limiter)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	c.URLHost = u.Host
	c.URLScheme = u.Scheme

	require.False(t, limiter.Has(ratelimit.GetGatewayBot()))

	resp, err := c.GatewayBot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wss://gateway.example", resp.URL)
	assert.Equal(t, 2, resp.Shards)
	assert.Equal(t, 1, resp.SessionStartLimit.MaxConcurrency)

	assert.True(t, limiter.Has(ratelimit.GetGatewayBot()),
		"GatewayBot must ticket its request through the configured Limiter")
}

func TestGatewayBot_NilLimiterSkipsTicketing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"wss://gateway.example","shards":1,"session_start_limit":{"max_concurrency":1}}`))
	}))
	defer srv.Close()

	c := New("abc", http.DefaultClient, nil)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	c.URLHost = u.Host
	c.URLScheme = u.Scheme

	resp, err := c.GatewayBot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Shards)
}
