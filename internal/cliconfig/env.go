package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvURL     = "ITEMD_URL"
	EnvTimeout = "ITEMD_TIMEOUT"
	EnvJSON    = "ITEMD_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// ITEMD_URL
	if v := os.Getenv(EnvURL); v != "" {
		cfg.URL = v
		cfg.Sources["url"] = SourceEnv
	}

	// ITEMD_TIMEOUT
	if v := os.Getenv(EnvTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil && timeout > 0 {
			cfg.Timeout = timeout
			cfg.Sources["timeout"] = SourceEnv
		}
	}

	// ITEMD_JSON
	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON = v == "true" || v == "1" || v == "yes"
		cfg.Sources["json"] = SourceEnv
	}
}
