package testing

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// RequestLog represents a handled HTTP request for assertions.
type RequestLog struct {
	// Method is the HTTP method (GET, POST, etc.)
	Method string
	// Path is the request URL path
	Path string
	// Headers are the request headers (single value per key)
	Headers map[string]string
	// Body is the request body content
	Body string
	// QueryString is the raw query string
	QueryString string
	// Status is the response status code
	Status int
}

// AssertJSONBody asserts that the request body matches the expected JSON.
// The expected value can be a string, []byte, or any struct/map that will be JSON encoded.
func (r *RequestLog) AssertJSONBody(t testing.TB, expected any) {
	t.Helper()

	want, err := normalizeJSON(expected)
	if err != nil {
		t.Errorf("failed to parse expected JSON: %v", err)
		return
	}
	got, err := normalizeJSON(r.Body)
	if err != nil {
		t.Errorf("request body is not valid JSON: %v\nbody: %s", err, r.Body)
		return
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request body does not match expected JSON (-want +got):\n%s", diff)
	}
}

// AssertBody asserts that the request body exactly matches the expected string.
func (r *RequestLog) AssertBody(t testing.TB, expected string) {
	t.Helper()

	if r.Body != expected {
		t.Errorf("request body does not match\nexpected: %q\nactual: %q", expected, r.Body)
	}
}

// AssertBodyContains asserts that the request body contains the substring.
func (r *RequestLog) AssertBodyContains(t testing.TB, substr string) {
	t.Helper()

	if !strings.Contains(r.Body, substr) {
		t.Errorf("request body does not contain %q\nbody: %s", substr, r.Body)
	}
}

// AssertHeader asserts that a request header has the expected value.
// Header names are matched case-insensitively.
func (r *RequestLog) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()

	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			if v != expected {
				t.Errorf("header %q: expected %q, got %q", key, expected, v)
			}
			return
		}
	}
	t.Errorf("header %q not found in request", key)
}

// AssertQueryParam asserts that a query parameter has the expected value.
func (r *RequestLog) AssertQueryParam(t testing.TB, key, expected string) {
	t.Helper()

	values, err := url.ParseQuery(r.QueryString)
	if err != nil {
		t.Errorf("invalid query string %q: %v", r.QueryString, err)
		return
	}
	if !values.Has(key) {
		t.Errorf("query parameter %q not found", key)
		return
	}
	if got := values.Get(key); got != expected {
		t.Errorf("query parameter %q: expected %q, got %q", key, expected, got)
	}
}

// AssertMethod asserts the request method.
func (r *RequestLog) AssertMethod(t testing.TB, expected string) {
	t.Helper()

	if !strings.EqualFold(r.Method, expected) {
		t.Errorf("expected method %s, got %s", expected, r.Method)
	}
}

// AssertPath asserts the request path.
func (r *RequestLog) AssertPath(t testing.TB, expected string) {
	t.Helper()

	if !matchesPath(r.Path, expected) {
		t.Errorf("expected path %s, got %s", expected, r.Path)
	}
}

// AssertStatus asserts the response status code.
func (r *RequestLog) AssertStatus(t testing.TB, expected int) {
	t.Helper()

	if r.Status != expected {
		t.Errorf("%s %s: expected status %d, got %d", r.Method, r.Path, expected, r.Status)
	}
}

// JSONField extracts a top-level field from the JSON body.
// Returns nil if the body is not a JSON object or the field is absent.
func (r *RequestLog) JSONField(field string) any {
	doc, err := normalizeJSON(r.Body)
	if err != nil {
		return nil
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	return obj[field]
}

// AssertJSONField asserts a top-level field of the JSON body.
func (r *RequestLog) AssertJSONField(t testing.TB, field string, expected any) {
	t.Helper()

	want, err := normalizeJSON(expected)
	if err != nil {
		t.Errorf("failed to encode expected value: %v", err)
		return
	}
	if diff := cmp.Diff(want, r.JSONField(field)); diff != "" {
		t.Errorf("JSON field %q mismatch (-want +got):\n%s", field, diff)
	}
}
