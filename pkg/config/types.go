package config

import (
	"net"
	"strconv"
	"time"
)

// DefaultPort is the port the server listens on when nothing else is configured.
const DefaultPort = 5000

// DefaultMaxBodySize is the default request body limit (1 MiB).
const DefaultMaxBodySize int64 = 1 << 20

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	// Enabled enables CORS handling. When false, no CORS headers are added.
	// Default: true
	Enabled bool `json:"enabled" yaml:"enabled"`
	// AllowOrigins specifies allowed origins. "*" allows any origin.
	// Entries may be glob patterns, e.g. "http://localhost:*" or "https://*.example.com".
	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
	// AllowMethods specifies allowed HTTP methods.
	// Default: ["GET", "POST", "PUT", "DELETE", "OPTIONS"]
	AllowMethods []string `json:"allowMethods,omitempty" yaml:"allowMethods,omitempty"`
	// AllowHeaders specifies allowed request headers.
	AllowHeaders []string `json:"allowHeaders,omitempty" yaml:"allowHeaders,omitempty"`
	// ExposeHeaders specifies headers that browsers are allowed to access.
	ExposeHeaders []string `json:"exposeHeaders,omitempty" yaml:"exposeHeaders,omitempty"`
	// AllowCredentials indicates whether credentials are allowed.
	// With AllowOrigins ["*"] the request origin is echoed instead of "*".
	AllowCredentials bool `json:"allowCredentials,omitempty" yaml:"allowCredentials,omitempty"`
	// MaxAge is the preflight cache duration in seconds. Default: 86400 (24 hours)
	MaxAge int `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is text or json. Default: text
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ServerConfig defines the item server runtime settings.
type ServerConfig struct {
	// Host is the interface to bind ("" = all interfaces)
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the HTTP listen port (0 = pick a free port)
	Port int `json:"port" yaml:"port"`
	// ReadTimeout is the HTTP read timeout in seconds
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout is the HTTP write timeout in seconds
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	// ShutdownTimeout bounds graceful shutdown, in seconds
	ShutdownTimeout int `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`
	// MaxBodySize is the maximum request body size in bytes
	MaxBodySize int64 `json:"maxBodySize,omitempty" yaml:"maxBodySize,omitempty"`
	// CORS configures Cross-Origin Resource Sharing. Default allows any origin.
	CORS *CORSConfig `json:"cors,omitempty" yaml:"cors,omitempty"`
	// Log configures the process logger
	Log *LogConfig `json:"log,omitempty" yaml:"log,omitempty"`
	// Seed lists glob patterns of YAML/JSON files holding initial items
	Seed []string `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            DefaultPort,
		ReadTimeout:     5,
		WriteTimeout:    10,
		ShutdownTimeout: 10,
		MaxBodySize:     DefaultMaxBodySize,
		CORS:            DefaultCORSConfig(),
		Log:             DefaultLogConfig(),
	}
}

// DefaultCORSConfig returns a permissive CORSConfig that allows any origin.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		Enabled:       true,
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID", "Accept", "Origin"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        86400,
	}
}

// DefaultLogConfig returns info-level text logging.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{Level: "info", Format: "text"}
}

// Address returns the host:port listen address.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// IsWildcard returns true if the CORS config allows all origins.
func (c *CORSConfig) IsWildcard() bool {
	if c == nil {
		return false
	}
	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
