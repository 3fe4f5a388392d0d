package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/getmockd/itemd/pkg/api"
	"github.com/getmockd/itemd/pkg/cli/internal/flags"
	"github.com/getmockd/itemd/pkg/config"
	"github.com/getmockd/itemd/pkg/items"
	"github.com/getmockd/itemd/pkg/logging"
	"github.com/getmockd/itemd/pkg/metrics"
)

// serveFlags holds the flag values for the serve command. Only flags the
// user set explicitly override the file and environment configuration.
type serveFlags struct {
	configFile  string
	port        int
	host        string
	logLevel    string
	logFormat   string
	maxBodySize int64
	seed        flags.StringSlice
	noCORS      bool
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the item server",
	Long: `Start the item server in the foreground.

Configuration is layered: built-in defaults, then the --config file (YAML or
JSON, also ITEMD_CONFIG), then ITEMD_* environment variables and PORT, then
flags given on the command line.

The server stops gracefully on SIGINT or SIGTERM.`,
	Example: `  itemd serve
  itemd serve --port 8080 --log-format json
  itemd serve --config itemd.yaml --seed 'seed/**/*.yaml'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveServeConfig(cmd, &serveFlagVals)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, cfg, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveFlagVals.register(serveCmd.Flags())
}

// register binds f to the server configuration flags on fs.
func (f *serveFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to server configuration file (YAML or JSON)")
	fs.IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	fs.StringVar(&f.host, "host", "", "Interface to bind (default all)")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	fs.Int64Var(&f.maxBodySize, "max-body-size", config.DefaultMaxBodySize, "Maximum request body size in bytes")
	fs.Var(&f.seed, "seed", "Seed file glob pattern (repeatable)")
	fs.BoolVar(&f.noCORS, "no-cors", false, "Disable CORS headers")
}

// resolveServeConfig loads the layered configuration and applies the flags
// that were set explicitly.
func resolveServeConfig(cmd *cobra.Command, f *serveFlags) (*config.ServerConfig, error) {
	path := f.configFile
	if path == "" {
		path = config.ConfigPathFromEnv()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("port") {
		cfg.Port = f.port
	}
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if changed("max-body-size") {
		cfg.MaxBodySize = f.maxBodySize
	}
	if changed("seed") {
		cfg.Seed = append([]string(nil), f.seed...)
	}
	if changed("no-cors") && f.noCORS {
		cfg.CORS.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildServer loads seed data and wires the store, its observers and the
// HTTP server together.
func buildServer(cfg *config.ServerConfig, log *slog.Logger) (*api.Server, error) {
	var seed []map[string]any
	if len(cfg.Seed) > 0 {
		records, err := items.LoadSeedFiles(cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("loading seed data: %w", err)
		}
		seed = records
		log.Info("loaded seed data", "items", len(seed), "patterns", cfg.Seed)
	}

	stats := items.NewStatsObserver()
	var store *items.Store
	svc := metrics.NewService(func() int { return store.Count() })
	store = items.NewStore(
		items.WithSeed(seed),
		items.WithObserver(items.MultiObserver{stats, svc}),
	)

	opts := append(api.FromConfig(cfg),
		api.WithLogger(log),
		api.WithMetrics(svc),
		api.WithStats(stats),
	)
	return api.New(store, opts...), nil
}

// runServer serves until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.ServerConfig, logOut io.Writer) error {
	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOut,
	})
	srv, err := buildServer(cfg, log)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.Address())
}
