package metrics

import (
	"runtime"
	"time"
)

// Service groups the metrics itemd exports. Create one per server with
// NewService; there is no package-level default registry.
type Service struct {
	Registry *Registry

	// RequestsTotal counts HTTP requests. Labels: method, route, status.
	RequestsTotal *Counter
	// RequestDuration tracks HTTP latency in seconds. Labels: method, route.
	RequestDuration *Histogram
	// RequestsInFlight is the number of requests being served. Labels: method.
	RequestsInFlight *Gauge
	// StoreOperations counts successful store operations. Labels: operation.
	StoreOperations *Counter
	// StoreErrors counts failed store operations. Labels: operation.
	StoreErrors *Counter
	// StoreResets counts store resets.
	StoreResets *Counter

	startTime time.Time
}

// NewService registers the itemd metrics on a fresh registry.
// itemCount is sampled at scrape time for the itemd_items gauge; it may be nil.
func NewService(itemCount func() int) *Service {
	reg := NewRegistry()
	s := &Service{
		Registry:  reg,
		startTime: time.Now(),
		RequestsTotal: reg.NewCounter(
			"itemd_http_requests_total",
			"Total number of HTTP requests",
			"method", "route", "status",
		),
		RequestDuration: reg.NewHistogram(
			"itemd_http_request_duration_seconds",
			"Duration of HTTP requests in seconds",
			DefaultBuckets,
			"method", "route",
		),
		RequestsInFlight: reg.NewGauge(
			"itemd_http_requests_in_flight",
			"Number of HTTP requests currently being served",
			"method",
		),
		StoreOperations: reg.NewCounter(
			"itemd_store_operations_total",
			"Total number of successful item store operations",
			"operation",
		),
		StoreErrors: reg.NewCounter(
			"itemd_store_errors_total",
			"Total number of failed item store operations",
			"operation",
		),
		StoreResets: reg.NewCounter(
			"itemd_store_resets_total",
			"Total number of item store resets",
		),
	}

	if itemCount != nil {
		reg.NewGaugeFunc("itemd_items", "Number of items currently stored", func() float64 {
			return float64(itemCount())
		})
	}
	reg.NewGaugeFunc("itemd_uptime_seconds", "Seconds since the server started", func() float64 {
		return time.Since(s.startTime).Seconds()
	})
	reg.NewGaugeFunc("go_goroutines", "Number of goroutines that currently exist", func() float64 {
		return float64(runtime.NumGoroutine())
	})
	return s
}

// ObserveRequest records one HTTP request.
func (s *Service) ObserveRequest(method, route, status string, duration time.Duration) {
	if vec, err := s.RequestsTotal.WithLabels(method, route, status); err == nil {
		_ = vec.Inc()
	}
	if vec, err := s.RequestDuration.WithLabels(method, route); err == nil {
		vec.Observe(duration.Seconds())
	}
}

// StartRequest counts a request as in flight until the returned func is called.
func (s *Service) StartRequest(method string) (done func()) {
	vec, err := s.RequestsInFlight.WithLabels(method)
	if err != nil {
		return func() {}
	}
	vec.Inc()
	return vec.Dec
}

func (s *Service) storeOp(operation string) {
	if vec, err := s.StoreOperations.WithLabels(operation); err == nil {
		_ = vec.Inc()
	}
}

// The methods below let a *Service observe an item store.

func (s *Service) OnCreate(itemID int64, duration time.Duration) { s.storeOp("create") }
func (s *Service) OnRead(itemID int64, duration time.Duration)   { s.storeOp("get") }
func (s *Service) OnList(count int, duration time.Duration)      { s.storeOp("list") }
func (s *Service) OnUpdate(itemID int64, duration time.Duration) { s.storeOp("update") }
func (s *Service) OnDelete(itemID int64, duration time.Duration) { s.storeOp("delete") }

func (s *Service) OnError(operation string, err error) {
	if vec, vecErr := s.StoreErrors.WithLabels(operation); vecErr == nil {
		_ = vec.Inc()
	}
}

func (s *Service) OnReset(count int, duration time.Duration) {
	_ = s.StoreResets.Inc()
}
