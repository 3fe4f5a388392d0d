package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/pkg/cli/internal/output"
	"github.com/getmockd/itemd/pkg/config"
)

// configFlagVals mirrors the serve flags so `itemd config` resolves the same
// configuration `itemd serve` would start with.
var configFlagVals serveFlags

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective server configuration",
	Long: `Print the configuration 'itemd serve' would start with, after defaults,
the config file, ITEMD_* environment variables and flags are applied.

The output is YAML that can be saved and passed back with --config.`,
	Example: `  itemd config
  itemd config --config itemd.yaml --port 8080
  itemd config --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveServeConfig(cmd, &configFlagVals)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if wantJSON() {
			return output.JSON(w, cfg)
		}
		data, err := config.ToYAML(cfg)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configFlagVals.register(configCmd.Flags())
}
