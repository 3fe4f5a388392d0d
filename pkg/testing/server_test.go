package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	stdtesting "testing"

	"github.com/getmockd/itemd/pkg/items"
)

func TestNew(t *stdtesting.T) {
	srv := New(t)
	if srv == nil {
		t.Fatal("New() returned nil")
	}
	if srv.t != t {
		t.Error("New() did not set testing.TB")
	}
	if !strings.HasPrefix(srv.URL(), "http://") {
		t.Errorf("Expected URL to start with http://, got %s", srv.URL())
	}
	srv.AssertCount(t, 0)
}

func TestSeedAndReset(t *stdtesting.T) {
	srv := New(t, WithSeed(
		map[string]any{"name": "Item1"},
		map[string]any{"name": "Item2"},
	))
	srv.AssertCount(t, 2)
	srv.AssertItem(t, 2, `{"id":2,"name":"Item2"}`)

	created := srv.Item().Set("name", "Item3").Set("qty", 3).Create()
	if created.ID != 3 {
		t.Fatalf("expected id 3, got %d", created.ID)
	}

	ctx := context.Background()
	if _, err := srv.Client().Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	srv.AssertNotFound(t, 1)
	if len(srv.Requests()) != 1 {
		t.Fatalf("expected 1 logged request, got %d", len(srv.Requests()))
	}

	srv.Reset()
	srv.AssertCount(t, 2)
	srv.AssertItem(t, 1, map[string]any{"id": 1, "name": "Item1"})
	if len(srv.Requests()) != 0 {
		t.Errorf("Reset() did not clear the request log")
	}
	if got := srv.Store().NextID(); got != 3 {
		t.Errorf("expected next id 3 after reset, got %d", got)
	}
}

func TestRequestLog(t *stdtesting.T) {
	srv := New(t)

	resp, err := srv.HTTPClient().Post(srv.URL()+"/api/items", "application/json",
		strings.NewReader(`{"name":"Widget","qty":3}`))
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp, err = srv.HTTPClient().Get(srv.URL() + "/api/items?filter=" + "qty%20%3E%201")
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	resp.Body.Close()

	logs := srv.Requests()
	if len(logs) != 2 {
		t.Fatalf("expected 2 logged requests, got %d", len(logs))
	}

	list := logs[0]
	list.AssertMethod(t, "GET")
	list.AssertPath(t, "/api/items")
	list.AssertQueryParam(t, "filter", "qty > 1")
	list.AssertStatus(t, http.StatusOK)

	create := logs[1]
	create.AssertStatus(t, http.StatusCreated)
	create.AssertHeader(t, "content-type", "application/json")
	create.AssertJSONBody(t, map[string]any{"name": "Widget", "qty": 3})
	create.AssertBodyContains(t, `"Widget"`)
	create.AssertJSONField(t, "qty", 3)
	if create.JSONField("missing") != nil {
		t.Error("expected nil for a missing JSON field")
	}

	srv.AssertItem(t, 1, `{"id":1,"name":"Widget","qty":3}`)
}

func TestAssertCalled(t *stdtesting.T) {
	srv := New(t)
	srv.Item().Fields(map[string]any{"name": "a"}).Create()

	ctx := context.Background()
	for range 2 {
		if _, err := srv.Client().Get(ctx, 1); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	_, err := srv.Client().Get(ctx, 42)
	if !errors.Is(err, items.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	srv.AssertCalled(t, "GET", "/api/items/1")
	srv.AssertCalledTimes(t, "GET", "/api/items/{id}", 3)
	srv.AssertNotCalled(t, "DELETE", "/api/items/{id}")

	last := srv.Requests()[0]
	last.AssertStatus(t, http.StatusNotFound)
	last.AssertPath(t, "/api/items/{id}")

	stats := srv.Stats()
	if stats.ReadCount != 2 || stats.ErrorCount != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestMatchesPath(t *stdtesting.T) {
	tests := []struct {
		actual, expected string
		want             bool
	}{
		{"/api/items", "/api/items", true},
		{"/api/items/7", "/api/items/{id}", true},
		{"/api/items/7", "/api/items", false},
		{"/api/items/7/x", "/api/items/{id}", false},
		{"/health", "/api/items/{id}", false},
	}
	for _, tt := range tests {
		if got := matchesPath(tt.actual, tt.expected); got != tt.want {
			t.Errorf("matchesPath(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
		}
	}
}
