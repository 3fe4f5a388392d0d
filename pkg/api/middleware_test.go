package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/itemd/pkg/logging"
)

func TestRequestID_Generated(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/api/items", nil)

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestID_Propagated(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "trace-abc")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "trace-abc", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_OversizedReplaced(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Format: "json", Output: &buf})
	srv, _ := newTestServer(t, WithLogger(logger))
	h := srv.Handler()

	doRequest(t, h, http.MethodPost, "/api/items", map[string]any{"name": "a"})
	doRequest(t, h, http.MethodGet, "/health", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "health checks are logged at debug level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/items", entry["path"])
	assert.Equal(t, "POST /api/items", entry["route"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.NotEmpty(t, entry["requestId"])
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		want    string
	}{
		{"matched", http.MethodGet, "GET /api/items/{id}", "GET /api/items/{id}"},
		{"preflight", http.MethodOptions, "", "preflight"},
		{"unmatched", http.MethodGet, "", "unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Pattern = tt.pattern
			assert.Equal(t, tt.want, routeLabel(req))
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	var buf bytes.Buffer
	srv, _ := newTestServer(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	h := srv.instrumentMiddleware(srv.recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic in handler")
	assert.Contains(t, buf.String(), "boom")
}

func TestRecoverMiddleware_AfterHeaderWritten(t *testing.T) {
	srv, _ := newTestServer(t)

	h := srv.instrumentMiddleware(srv.recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStatusResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusResponseWriter(rec)

	_, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	sw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, sw.statusCode)
	assert.Equal(t, 5, sw.bytes)
	assert.Same(t, rec, sw.Unwrap())
}
