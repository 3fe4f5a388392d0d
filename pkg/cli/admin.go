package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/pkg/cli/internal/output"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Inspect and reset a running server",
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show item count and store operation counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}

		w := cmd.OutOrStdout()
		if wantJSON() {
			return output.JSON(w, stats)
		}

		tw := output.Table(w)
		fmt.Fprintf(tw, "Items:\t%d\n", stats.Items)
		fmt.Fprintf(tw, "Next ID:\t%d\n", stats.NextID)
		fmt.Fprintf(tw, "Uptime:\t%ds\n", stats.Uptime)
		if ops := stats.Operations; ops != nil {
			fmt.Fprintf(tw, "Creates:\t%d\n", ops.CreateCount)
			fmt.Fprintf(tw, "Reads:\t%d\n", ops.ReadCount)
			fmt.Fprintf(tw, "Lists:\t%d\n", ops.ListCount)
			fmt.Fprintf(tw, "Updates:\t%d\n", ops.UpdateCount)
			fmt.Fprintf(tw, "Deletes:\t%d\n", ops.DeleteCount)
			fmt.Fprintf(tw, "Errors:\t%d\n", ops.ErrorCount)
			fmt.Fprintf(tw, "Resets:\t%d\n", ops.ResetCount)
		}
		return tw.Flush()
	},
}

var adminResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore seed data and restart identifiers at 1",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		count, err := c.Reset(cmd.Context())
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}

		w := cmd.OutOrStdout()
		if wantJSON() {
			return output.JSON(w, map[string]any{"status": "reset", "items": count})
		}
		fmt.Fprintf(w, "Store reset (%d items)\n", count)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check if the item server is healthy and reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		type healthResult struct {
			Status string `json:"status"`
			URL    string `json:"url"`
			Error  string `json:"error,omitempty"`
		}

		c := newClient()
		w := cmd.OutOrStdout()
		if err := c.Health(cmd.Context()); err != nil {
			if wantJSON() {
				_ = output.JSON(w, healthResult{Status: "unhealthy", URL: c.BaseURL(), Error: err.Error()})
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "unhealthy: %v\n", formatClientError(c.BaseURL(), err))
			}
			return fmt.Errorf("server is not healthy")
		}

		if wantJSON() {
			return output.JSON(w, healthResult{Status: "healthy", URL: c.BaseURL()})
		}
		fmt.Fprintln(w, "healthy")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd, healthCmd)
	adminCmd.AddCommand(adminStatsCmd, adminResetCmd)
}
