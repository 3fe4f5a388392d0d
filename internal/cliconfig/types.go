package cliconfig

// CLIConfig is the configuration the client commands (items, admin) use to
// reach a server.
type CLIConfig struct {
	// URL is the base URL of the item server
	URL string `yaml:"url" json:"url"`
	// Timeout is the request timeout in seconds
	Timeout int `yaml:"timeout" json:"timeout"`
	// JSON selects JSON output instead of tables
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
	// SetFields records which keys a config file set explicitly, so an
	// explicit `json: false` can override a lower layer.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// DefaultURL is the address of a locally started server.
const DefaultURL = "http://localhost:5000"

// DefaultTimeout is the default request timeout in seconds.
const DefaultTimeout = 30

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	return &CLIConfig{
		URL:     DefaultURL,
		Timeout: DefaultTimeout,
		Sources: map[string]string{
			"url":     SourceDefault,
			"timeout": SourceDefault,
			"json":    SourceDefault,
		},
	}
}
