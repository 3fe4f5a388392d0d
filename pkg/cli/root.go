package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/internal/cliconfig"
	"github.com/getmockd/itemd/pkg/client"
)

var (
	// Persistent flags available to all subcommands
	serverURL      string
	timeoutSeconds int
	jsonOutput     bool

	// cliCfg is resolved once per invocation in PersistentPreRunE.
	cliCfg *cliconfig.CLIConfig

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itemd",
	Short: "itemd is an in-memory CRUD server for JSON items",
	Long: `itemd serves a single "item" resource over HTTP. Items are schema-less
JSON objects with a server-assigned integer id and live in memory only.

Run 'itemd serve' to start a server. The items and admin commands talk to a
running server; its address comes from --url, ITEMD_URL, .itemdrc.yaml in the
current directory or the global config file, in that order.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: resolveCLIConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", cliconfig.DefaultURL, "Item server base URL")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", cliconfig.DefaultTimeout, "Request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// resolveCLIConfig layers explicitly set flags over the file and environment
// configuration.
func resolveCLIConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = serverURL
		cfg.Sources["url"] = cliconfig.SourceFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeoutSeconds
		cfg.Sources["timeout"] = cliconfig.SourceFlag
	}
	if flags.Changed("json") {
		cfg.JSON = jsonOutput
		cfg.Sources["json"] = cliconfig.SourceFlag
	}

	cliCfg = cfg
	return nil
}

// newClient builds an API client from the resolved CLI configuration.
func newClient() *client.Client {
	cfg := cliCfg
	if cfg == nil {
		cfg = cliconfig.NewDefault()
	}
	return client.New(cfg.URL, client.WithTimeout(time.Duration(cfg.Timeout)*time.Second))
}

func wantJSON() bool {
	return cliCfg != nil && cliCfg.JSON
}
