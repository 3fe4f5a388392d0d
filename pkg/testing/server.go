package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/getmockd/itemd/pkg/api"
	"github.com/getmockd/itemd/pkg/client"
	"github.com/getmockd/itemd/pkg/items"
)

// Server is a test helper running an item server in-process.
type Server struct {
	t       testing.TB
	store   *items.Store
	stats   *items.StatsObserver
	httpSrv *httptest.Server
	client  *client.Client

	requestsMu sync.RWMutex
	requests   []RequestLog
}

type serverOptions struct {
	seed    []map[string]any
	apiOpts []api.Option
}

// Option configures a test server.
type Option func(*serverOptions)

// WithSeed loads records as seed data. They get ids 1..n and are restored by
// Reset.
func WithSeed(records ...map[string]any) Option {
	return func(o *serverOptions) {
		o.seed = append(o.seed, records...)
	}
}

// WithAPIOptions passes options through to api.New.
func WithAPIOptions(opts ...api.Option) Option {
	return func(o *serverOptions) {
		o.apiOpts = append(o.apiOpts, opts...)
	}
}

// New starts an item server for the duration of the test.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		t:     t,
		stats: items.NewStatsObserver(),
	}
	s.store = items.NewStore(items.WithSeed(o.seed), items.WithObserver(s.stats))

	apiOpts := append([]api.Option{api.WithStats(s.stats)}, o.apiOpts...)
	handler := api.New(s.store, apiOpts...).Handler()

	s.httpSrv = httptest.NewServer(s.record(handler))
	s.client = client.New(s.httpSrv.URL, client.WithHTTPClient(s.httpSrv.Client()))

	t.Cleanup(s.Stop)
	return s
}

// record captures every request and its response status.
func (s *Server) record(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)

		headers := make(map[string]string, len(r.Header))
		for k, v := range r.Header {
			if len(v) > 0 {
				headers[k] = v[0]
			}
		}

		s.requestsMu.Lock()
		s.requests = append(s.requests, RequestLog{
			Method:      r.Method,
			Path:        r.URL.Path,
			Headers:     headers,
			Body:        string(body),
			QueryString: r.URL.RawQuery,
			Status:      rec.status,
		})
		s.requestsMu.Unlock()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Stop shuts the server down. It is registered with t.Cleanup by New, and
// calling it more than once is safe.
func (s *Server) Stop() {
	if s.httpSrv != nil {
		s.httpSrv.Close()
	}
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Client returns an API client bound to the server.
func (s *Server) Client() *client.Client {
	return s.client
}

// HTTPClient returns an http.Client configured for the server.
func (s *Server) HTTPClient() *http.Client {
	return s.httpSrv.Client()
}

// Store returns the backing store for direct inspection.
func (s *Server) Store() *items.Store {
	return s.store
}

// Stats returns the store operation counters.
func (s *Server) Stats() items.StatsSnapshot {
	return s.stats.Snapshot()
}

// Reset restores the seed data, restarts identifiers at 1 and clears the
// request log. Use this between test cases to start fresh.
func (s *Server) Reset() {
	s.store.Reset()

	s.requestsMu.Lock()
	s.requests = nil
	s.requestsMu.Unlock()
}

// Item returns a builder for an item created directly in the store.
func (s *Server) Item() *ItemBuilder {
	return &ItemBuilder{server: s, fields: make(map[string]any)}
}

// Requests returns all logged requests, newest first.
func (s *Server) Requests() []RequestLog {
	s.requestsMu.RLock()
	defer s.requestsMu.RUnlock()

	result := make([]RequestLog, len(s.requests))
	for i, r := range s.requests {
		result[len(s.requests)-1-i] = r
	}
	return result
}

// AssertCalled asserts that an endpoint was called at least once.
func (s *Server) AssertCalled(t testing.TB, method, path string) {
	t.Helper()

	if s.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not called", method, path)
	}
}

// AssertCalledTimes asserts that an endpoint was called exactly n times.
func (s *Server) AssertCalledTimes(t testing.TB, method, path string, times int) {
	t.Helper()

	count := s.countCalls(method, path)
	if count != times {
		t.Errorf("expected %s %s to be called %d times, but was called %d times",
			method, path, times, count)
	}
}

// AssertNotCalled asserts that an endpoint was not called.
func (s *Server) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()

	count := s.countCalls(method, path)
	if count > 0 {
		t.Errorf("expected %s %s to not be called, but it was called %d times",
			method, path, count)
	}
}

// AssertCount asserts the number of stored items.
func (s *Server) AssertCount(t testing.TB, expected int) {
	t.Helper()

	if got := s.store.Count(); got != expected {
		t.Errorf("expected %d items, got %d", expected, got)
	}
}

// AssertItem asserts that the stored item with itemID renders as expected.
// The expected value can be a JSON string, []byte, or any value that will be
// JSON encoded.
func (s *Server) AssertItem(t testing.TB, itemID int64, expected any) {
	t.Helper()

	item, err := s.store.Get(itemID)
	if err != nil {
		t.Errorf("item %d: %v", itemID, err)
		return
	}

	want, err := normalizeJSON(expected)
	if err != nil {
		t.Errorf("failed to parse expected JSON: %v", err)
		return
	}
	got, err := normalizeJSON(item)
	if err != nil {
		t.Errorf("failed to encode item %d: %v", itemID, err)
		return
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("item %d mismatch (-want +got):\n%s", itemID, diff)
	}
}

// AssertNotFound asserts that no item with itemID exists.
func (s *Server) AssertNotFound(t testing.TB, itemID int64) {
	t.Helper()

	if item, err := s.store.Get(itemID); err == nil {
		t.Errorf("expected item %d to be absent, found %v", itemID, item.ToJSON())
	}
}

// countCalls counts how many times a method/path combination was called.
func (s *Server) countCalls(method, path string) int {
	s.requestsMu.RLock()
	defer s.requestsMu.RUnlock()

	count := 0
	for _, r := range s.requests {
		if strings.EqualFold(r.Method, method) && matchesPath(r.Path, path) {
			count++
		}
	}
	return count
}

// matchesPath checks if a request path matches the expected path pattern.
// Supports exact matching and path parameters ({id} patterns).
func matchesPath(actual, expected string) bool {
	if actual == expected {
		return true
	}

	actualParts := strings.Split(actual, "/")
	expectedParts := strings.Split(expected, "/")
	if len(actualParts) != len(expectedParts) {
		return false
	}

	for i, exp := range expectedParts {
		if strings.HasPrefix(exp, "{") && strings.HasSuffix(exp, "}") {
			continue
		}
		if exp != actualParts[i] {
			return false
		}
	}
	return true
}

// normalizeJSON decodes v, or its JSON encoding, into generic JSON values so
// that differently typed but equal documents compare equal.
func normalizeJSON(v any) (any, error) {
	var data []byte
	switch val := v.(type) {
	case string:
		data = []byte(val)
	case []byte:
		data = val
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		data = encoded
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
