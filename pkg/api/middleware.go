package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/getmockd/itemd/internal/id"
	"github.com/getmockd/itemd/pkg/httputil"
)

// RequestIDHeader carries the per-request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied request IDs.
const maxRequestIDLength = 128

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by the server, or "".
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// quietPaths are logged at debug level only.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// withMiddleware wraps the mux. From the outside in: request instrumentation,
// panic recovery, CORS.
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	corsHandler := NewCORSMiddleware(handler, s.cors)
	recovered := s.recoverMiddleware(corsHandler)
	return s.instrumentMiddleware(recovered)
}

// instrumentMiddleware assigns a request ID, then records an access log line
// and request metrics once the handler returns.
func (s *Server) instrumentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.metrics != nil {
			defer s.metrics.StartRequest(r.Method)()
		}

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = id.RequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)

		// r is replaced once here and passed down unchanged, so the mux
		// records the matched pattern on this same request.
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))
		sw := newStatusResponseWriter(w)

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		route := routeLabel(r)

		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, strconv.Itoa(sw.statusCode), duration)
		}

		level := s.log.Info
		if quietPaths[r.URL.Path] {
			level = s.log.Debug
		}
		level("request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", sw.statusCode,
			"bytes", sw.bytes,
			"duration", duration,
			"requestId", requestID,
		)
	})
}

// recoverMiddleware turns a handler panic into a 500 response.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("panic in handler",
					"panic", fmt.Sprint(rec),
					"method", r.Method,
					"path", r.URL.Path,
					"requestId", RequestIDFromContext(r.Context()),
					"stack", string(debug.Stack()),
				)
				if sw, ok := w.(*statusResponseWriter); ok && sw.headerWritten {
					return
				}
				_ = httputil.WriteInternalError(w, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// routeLabel returns the matched mux pattern so metric labels stay bounded.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	if r.Method == http.MethodOptions {
		return "preflight"
	}
	return "unmatched"
}

// statusResponseWriter wraps http.ResponseWriter to capture the status code
// and the number of body bytes written.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytes         int
	headerWritten bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code before writing the header.
func (w *statusResponseWriter) WriteHeader(code int) {
	if !w.headerWritten {
		w.statusCode = code
		w.headerWritten = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write marks the header as written (implicit 200 OK) and counts bytes.
func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.headerWritten = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController support.
func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
