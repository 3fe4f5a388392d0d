package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "itemd"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".itemdrc.yaml", ".itemdrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .itemdrc.yaml or .itemdrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findFirst(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir simply means no global config
		return "", nil
	}
	return findFirst(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Path:    path,
			Message: err.Error(),
		}
	}

	// Record which keys were present so explicit false values merge.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		cfg.SetFields = make(map[string]bool, len(raw))
		for k := range raw {
			cfg.SetFields[k] = true
		}
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadFrom merges defaults, the global and local files (either may be "")
// and the environment. A broken file is reported, a missing one is skipped.
func LoadFrom(globalPath, localPath string) (*CLIConfig, error) {
	cfg := NewDefault()

	for _, layer := range []struct {
		path   string
		source string
	}{
		{globalPath, SourceGlobal},
		{localPath, SourceLocal},
	} {
		if layer.path == "" {
			continue
		}
		fileCfg, err := LoadConfigFile(layer.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("loading %s config: %w", layer.source, err)
		}
		MergeConfig(cfg, fileCfg, layer.source)
	}

	LoadEnvConfig(cfg)
	return cfg, nil
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: flags > env > local config > global config > defaults
func LoadAll() (*CLIConfig, error) {
	globalPath, err := FindGlobalConfig()
	if err != nil {
		return nil, err
	}
	localPath, err := FindLocalConfig()
	if err != nil {
		return nil, err
	}
	return LoadFrom(globalPath, localPath)
}
