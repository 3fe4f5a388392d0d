// Package client is an HTTP client for the itemd item API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getmockd/itemd/internal/id"
	"github.com/getmockd/itemd/pkg/api"
	"github.com/getmockd/itemd/pkg/items"
)

// DefaultBaseURL is where a locally started server listens by default.
const DefaultBaseURL = "http://localhost:5000"

// APIError is returned for any non-2xx response and for connection failures
// (StatusCode 0).
type APIError struct {
	StatusCode int
	Message    string
	Hint       string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the transport error for connection failures.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, items.ErrNotFound) match a missing item.
func (e *APIError) Is(target error) bool {
	return target == items.ErrNotFound &&
		e.StatusCode == http.StatusNotFound &&
		e.Message == items.NotFoundMessage
}

// IsConnectionError reports whether err means the server could not be reached.
func IsConnectionError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}

// Client talks to one itemd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout for the client. A client passed to
// WithHTTPClient is copied first and left unchanged.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns items in creation order. A non-empty filter is passed as the
// filter expression.
func (c *Client) List(ctx context.Context, filter string) ([]items.Item, error) {
	path := "/api/items"
	if filter != "" {
		path += "?filter=" + url.QueryEscape(filter)
	}

	var result []items.Item
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []items.Item{}
	}
	return result, nil
}

// Get returns one item.
func (c *Client) Get(ctx context.Context, itemID int64) (items.Item, error) {
	var item items.Item
	err := c.do(ctx, http.MethodGet, itemPath(itemID), nil, http.StatusOK, &item)
	return item, err
}

// Create stores a new item built from fields.
func (c *Client) Create(ctx context.Context, fields map[string]any) (items.Item, error) {
	var item items.Item
	err := c.do(ctx, http.MethodPost, "/api/items", fieldsOrEmpty(fields), http.StatusCreated, &item)
	return item, err
}

// Update shallow-merges fields into an existing item.
func (c *Client) Update(ctx context.Context, itemID int64, fields map[string]any) (items.Item, error) {
	var item items.Item
	err := c.do(ctx, http.MethodPut, itemPath(itemID), fieldsOrEmpty(fields), http.StatusOK, &item)
	return item, err
}

// Delete removes an item and returns it.
func (c *Client) Delete(ctx context.Context, itemID int64) (items.Item, error) {
	var item items.Item
	err := c.do(ctx, http.MethodDelete, itemPath(itemID), nil, http.StatusOK, &item)
	return item, err
}

// Health checks if the server is running.
func (c *Client) Health(ctx context.Context) error {
	var result api.HealthResponse
	return c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &result)
}

// Stats returns store counters.
func (c *Client) Stats(ctx context.Context) (*api.StatsResponse, error) {
	var result api.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset restores the server's seed data and returns the resulting item count.
func (c *Client) Reset(ctx context.Context) (int, error) {
	var result api.ResetResponse
	if err := c.do(ctx, http.MethodPost, "/admin/reset", nil, http.StatusOK, &result); err != nil {
		return 0, err
	}
	return result.Items, nil
}

func itemPath(itemID int64) string {
	return "/api/items/" + id.Format(itemID)
}

func fieldsOrEmpty(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	return fields
}

// do sends a request and decodes a response with status want into out.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{
			Message: fmt.Sprintf("cannot connect to itemd at %s: %v", c.baseURL, err),
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// parseError parses an error response from the API.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp items.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Message,
			Hint:       errResp.Hint,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
	}
}
