package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/itemd/pkg/config"
)

// CORSMiddleware wraps an http.Handler with CORS handling based on configuration.
type CORSMiddleware struct {
	handler http.Handler
	config  *config.CORSConfig
}

// NewCORSMiddleware creates a new CORS middleware with the given configuration.
// If cfg is nil, every origin is allowed.
func NewCORSMiddleware(handler http.Handler, cfg *config.CORSConfig) *CORSMiddleware {
	if cfg == nil {
		cfg = config.DefaultCORSConfig()
	}
	return &CORSMiddleware{
		handler: handler,
		config:  cfg,
	}
}

// ServeHTTP implements the http.Handler interface.
func (m *CORSMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !m.config.Enabled {
		m.handler.ServeHTTP(w, r)
		return
	}

	origin := r.Header.Get("Origin")
	allowOrigin := AllowOriginValue(m.config, origin)

	if allowOrigin != "" {
		if allowOrigin != "*" {
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)

		if len(m.config.ExposeHeaders) > 0 {
			w.Header().Set("Access-Control-Expose-Headers", strings.Join(m.config.ExposeHeaders, ", "))
		}
		if m.config.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
	}

	if r.Method != http.MethodOptions {
		m.handler.ServeHTTP(w, r)
		return
	}

	// Preflight
	if allowOrigin == "" {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	methods := m.config.AllowMethods
	if len(methods) == 0 {
		methods = config.DefaultCORSConfig().AllowMethods
	}
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(methods, ", "))

	headers := m.config.AllowHeaders
	if len(headers) == 0 {
		// Reflect what the browser asked for.
		if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
			w.Header().Set("Access-Control-Allow-Headers", requested)
		}
	} else {
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(headers, ", "))
	}

	maxAge := m.config.MaxAge
	if maxAge <= 0 {
		maxAge = 86400
	}
	w.Header().Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
	w.WriteHeader(http.StatusNoContent)
}

// AllowOriginValue returns the Access-Control-Allow-Origin value for a request
// origin, or "" if the origin is not allowed. Configured origins may be glob
// patterns such as "http://localhost:*".
func AllowOriginValue(cfg *config.CORSConfig, origin string) string {
	if cfg == nil || !cfg.Enabled {
		return ""
	}

	if cfg.IsWildcard() {
		// "*" cannot be combined with credentials; echo the origin instead.
		if cfg.AllowCredentials {
			return origin
		}
		return "*"
	}

	if origin == "" {
		return ""
	}
	for _, allowed := range cfg.AllowOrigins {
		if allowed == origin {
			return origin
		}
		if ok, err := doublestar.Match(allowed, origin); err == nil && ok {
			return origin
		}
	}
	return ""
}
