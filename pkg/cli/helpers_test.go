package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/getmockd/itemd/pkg/items"
	itemdtest "github.com/getmockd/itemd/pkg/testing"
)

// isolateEnv keeps the developer's config files and ITEMD_* variables out of
// the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range []string{
		"ITEMD_URL", "ITEMD_TIMEOUT", "ITEMD_JSON",
		"ITEMD_PORT", "ITEMD_HOST", "ITEMD_LOG_LEVEL", "ITEMD_LOG_FORMAT",
		"ITEMD_MAX_BODY_SIZE", "ITEMD_SEED", "ITEMD_CONFIG", "PORT",
	} {
		t.Setenv(name, "")
	}
}

// resetFlags restores every flag in the command tree to its default, since
// the commands are package-level and keep state between executions.
func resetFlags(t *testing.T) {
	t.Helper()
	itemSet = nil
	serveFlagVals.seed = nil
	configFlagVals.seed = nil
	cliCfg = nil

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		reset := func(f *pflag.Flag) {
			if f.Value.Type() != "stringSlice" {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// executeCommand runs the root command with args and returns what it wrote
// to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// newItemServer starts an item server backed by a fresh store.
func newItemServer(t *testing.T, seed ...map[string]any) (*itemdtest.Server, *items.Store) {
	t.Helper()
	srv := itemdtest.New(t, itemdtest.WithSeed(seed...))
	return srv, srv.Store()
}
