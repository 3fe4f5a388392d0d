package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/itemd/pkg/items"
	"github.com/getmockd/itemd/pkg/metrics"
)

func TestStats(t *testing.T) {
	stats := items.NewStatsObserver()
	store := items.NewStore(items.WithObserver(stats))
	h := New(store, WithStats(stats)).Handler()

	doRequest(t, h, http.MethodPost, "/api/items", map[string]any{"name": "a"})
	doRequest(t, h, http.MethodGet, "/api/items/1", nil)
	doRequest(t, h, http.MethodGet, "/api/items/9", nil)

	rec := doRequest(t, h, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeObject(t, rec)
	assert.Equal(t, float64(1), body["items"])
	assert.Equal(t, float64(2), body["nextId"])

	ops, ok := body["operations"].(map[string]any)
	require.True(t, ok, "operations missing: %v", body)
	assert.Equal(t, float64(1), ops["createCount"])
	assert.Equal(t, float64(1), ops["readCount"])
	assert.Equal(t, float64(1), ops["errorCount"])
}

func TestStats_WithoutObserver(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decodeObject(t, rec), "operations")
}

func TestReset(t *testing.T) {
	seed := []map[string]any{{"name": "seeded"}}
	store := items.NewStore(items.WithSeed(seed))
	h := New(store).Handler()

	doRequest(t, h, http.MethodPost, "/api/items", map[string]any{"name": "extra"})
	doRequest(t, h, http.MethodDelete, "/api/items/1", nil)

	rec := doRequest(t, h, http.MethodPost, "/admin/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "reset", "items": float64(1)}, decodeObject(t, rec))

	list := decodeArray(t, doRequest(t, h, http.MethodGet, "/api/items", nil))
	assert.Equal(t, []map[string]any{{"id": float64(1), "name": "seeded"}}, list)

	rec = doRequest(t, h, http.MethodPost, "/api/items", map[string]any{"name": "next"})
	assert.Equal(t, float64(2), decodeObject(t, rec)["id"])
}

func TestMetricsEndpoint(t *testing.T) {
	var store *items.Store
	svc := metrics.NewService(func() int { return store.Count() })
	store = items.NewStore(items.WithObserver(svc))
	h := New(store, WithMetrics(svc)).Handler()

	doRequest(t, h, http.MethodPost, "/api/items", map[string]any{"name": "a"})
	doRequest(t, h, http.MethodGet, "/api/items/5", nil)

	rec := doRequest(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `itemd_http_requests_total{method="POST",route="POST /api/items",status="201"} 1`)
	assert.Contains(t, body, `itemd_http_requests_total{method="GET",route="GET /api/items/{id}",status="404"} 1`)
	assert.Contains(t, body, `itemd_store_operations_total{operation="create"} 1`)
	assert.Contains(t, body, `itemd_store_errors_total{operation="get"} 1`)
	assert.Contains(t, body, "itemd_items 1")
	assert.Contains(t, body, `itemd_http_requests_in_flight{method="POST"} 0`)
	assert.Contains(t, body, `itemd_http_requests_in_flight{method="GET"} 1`, "the scrape itself is in flight")
}

func TestMetricsEndpoint_DisabledWithoutService(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
