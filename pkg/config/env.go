package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvPort         = "ITEMD_PORT"
	EnvHost         = "ITEMD_HOST"
	EnvLogLevel     = "ITEMD_LOG_LEVEL"
	EnvLogFormat    = "ITEMD_LOG_FORMAT"
	EnvMaxBodySize  = "ITEMD_MAX_BODY_SIZE"
	EnvSeed         = "ITEMD_SEED"
	EnvConfig       = "ITEMD_CONFIG"
	EnvPlatformPort = "PORT"
)

// ApplyEnv overlays environment variables onto cfg. Only variables that are
// set are applied. ITEMD_PORT wins over the platform-provided PORT.
func ApplyEnv(cfg *ServerConfig) error {
	// PORT, as set by most PaaS runtimes
	if v := os.Getenv(EnvPlatformPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPlatformPort, v, err)
		}
		cfg.Port = port
	}

	// ITEMD_PORT
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}

	// ITEMD_HOST
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}

	// ITEMD_MAX_BODY_SIZE
	if v := os.Getenv(EnvMaxBodySize); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxBodySize, v, err)
		}
		cfg.MaxBodySize = size
	}

	if cfg.Log == nil {
		cfg.Log = DefaultLogConfig()
	}

	// ITEMD_LOG_LEVEL
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}

	// ITEMD_LOG_FORMAT
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}

	// ITEMD_SEED, comma separated glob patterns
	if v := os.Getenv(EnvSeed); v != "" {
		cfg.Seed = splitList(v)
	}

	return nil
}

// ConfigPathFromEnv returns the config file path from the environment.
// Returns empty string if not set.
func ConfigPathFromEnv() string {
	return os.Getenv(EnvConfig)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
