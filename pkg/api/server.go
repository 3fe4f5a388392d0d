package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/getmockd/itemd/pkg/config"
	"github.com/getmockd/itemd/pkg/items"
	"github.com/getmockd/itemd/pkg/logging"
	"github.com/getmockd/itemd/pkg/metrics"
)

// Server serves the item API for a single store.
type Server struct {
	store   *items.Store
	log     *slog.Logger
	metrics *metrics.Service
	stats   *items.StatsObserver
	cors    *config.CORSConfig

	maxBodySize     int64
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration

	startTime time.Time
	handler   http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger. A nil logger discards output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Service) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithStats exposes the given store counters on /admin/stats.
func WithStats(stats *items.StatsObserver) Option {
	return func(s *Server) {
		s.stats = stats
	}
}

// WithCORS sets the CORS policy. Without it every origin is allowed.
func WithCORS(cfg *config.CORSConfig) Option {
	return func(s *Server) {
		if cfg != nil {
			s.cors = cfg
		}
	}
}

// WithMaxBodySize limits request bodies to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// WithTimeouts sets the HTTP read/write timeouts and the graceful shutdown bound.
// Zero values leave the current setting unchanged.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// FromConfig translates a ServerConfig into server options.
func FromConfig(cfg *config.ServerConfig) []Option {
	return []Option{
		WithCORS(cfg.CORS),
		WithMaxBodySize(cfg.MaxBodySize),
		WithTimeouts(cfg.ReadTimeoutDuration(), cfg.WriteTimeoutDuration(), cfg.ShutdownTimeoutDuration()),
	}
}

// New creates a Server for store.
func New(store *items.Store, opts ...Option) *Server {
	s := &Server{
		store:           store,
		log:             logging.Nop(),
		cors:            config.DefaultCORSConfig(),
		maxBodySize:     config.DefaultMaxBodySize,
		readTimeout:     5 * time.Second,
		writeTimeout:    10 * time.Second,
		shutdownTimeout: 10 * time.Second,
		startTime:       time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.withMiddleware(mux)
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	return int(time.Since(s.startTime).Seconds())
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, waiting up to the configured shutdown timeout for in-flight
// requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("item server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		s.log.Info("shutting down item server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}
