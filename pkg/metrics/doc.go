// Package metrics provides Prometheus-compatible metrics collection for itemd.
//
// This package implements the Prometheus text exposition format
// (text/plain; version=0.0.4) on top of the standard library.
//
// Supported metric types:
//   - Counter: monotonically increasing value (e.g., request counts)
//   - Gauge: value that can go up or down, or is computed at scrape time
//   - Histogram: distribution of values with configurable buckets
//
// All metrics are safe for concurrent use.
//
// # Service Metrics
//
// NewService registers the metrics the server exports:
//
//   - itemd_http_requests_total (method, route, status)
//   - itemd_http_request_duration_seconds (method, route)
//   - itemd_store_operations_total (operation)
//   - itemd_store_errors_total (operation)
//   - itemd_store_resets_total
//   - itemd_items, itemd_uptime_seconds, go_goroutines
//
// A *Service also satisfies the item store's observer interface, so store
// activity is counted without the store importing this package.
//
// # Usage
//
//	svc := metrics.NewService(store.Count)
//	http.Handle("GET /metrics", svc.Registry.Handler())
//	svc.ObserveRequest("GET", "/api/items", "200", elapsed)
package metrics
