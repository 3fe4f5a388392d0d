package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/itemd/pkg/logging"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks the ServerConfig and all nested sections.
func (c *ServerConfig) Validate() error {
	if c == nil {
		return &ValidationError{Field: "config", Message: "config is nil"}
	}

	if c.Port < 0 || c.Port > 65535 {
		return &ValidationError{
			Field:   "port",
			Message: fmt.Sprintf("must be between 0 and 65535, got %d", c.Port),
		}
	}
	if c.ReadTimeout < 0 {
		return &ValidationError{Field: "readTimeout", Message: "must not be negative"}
	}
	if c.WriteTimeout < 0 {
		return &ValidationError{Field: "writeTimeout", Message: "must not be negative"}
	}
	if c.ShutdownTimeout < 0 {
		return &ValidationError{Field: "shutdownTimeout", Message: "must not be negative"}
	}
	if c.MaxBodySize <= 0 {
		return &ValidationError{
			Field:   "maxBodySize",
			Message: fmt.Sprintf("must be positive, got %d", c.MaxBodySize),
		}
	}

	for i, pattern := range c.Seed {
		if !doublestar.ValidatePathPattern(pattern) {
			return &ValidationError{
				Field:   fmt.Sprintf("seed[%d]", i),
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			}
		}
	}

	if err := c.CORS.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// Validate checks the CORSConfig.
func (c *CORSConfig) Validate() error {
	if c == nil || !c.Enabled {
		return nil
	}

	for i, origin := range c.AllowOrigins {
		if origin == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("cors.allowOrigins[%d]", i),
				Message: "origin must not be empty",
			}
		}
		if !doublestar.ValidatePattern(origin) {
			return &ValidationError{
				Field:   fmt.Sprintf("cors.allowOrigins[%d]", i),
				Message: fmt.Sprintf("invalid origin pattern %q", origin),
			}
		}
	}

	for i, method := range c.AllowMethods {
		if !isHTTPMethod(method) {
			return &ValidationError{
				Field:   fmt.Sprintf("cors.allowMethods[%d]", i),
				Message: fmt.Sprintf("unknown HTTP method %q", method),
			}
		}
	}

	if c.MaxAge < 0 {
		return &ValidationError{Field: "cors.maxAge", Message: "must not be negative"}
	}
	return nil
}

// Validate checks the LogConfig. Empty values fall back to defaults.
func (c *LogConfig) Validate() error {
	if c == nil {
		return nil
	}
	if _, err := logging.ParseLevel(c.Level); err != nil {
		return &ValidationError{Field: "log.level", Message: err.Error()}
	}
	if _, err := logging.ParseFormat(c.Format); err != nil {
		return &ValidationError{Field: "log.format", Message: err.Error()}
	}
	return nil
}

func isHTTPMethod(m string) bool {
	switch strings.ToUpper(m) {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}
