package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/itemd/internal/cliconfig"
)

func TestResolveCLIConfig_Precedence(t *testing.T) {
	isolateEnv(t)
	ts, _ := newItemServer(t)

	// Environment supplies the URL and JSON output when no flag is given.
	t.Setenv("ITEMD_URL", ts.URL())
	t.Setenv("ITEMD_JSON", "true")

	out, _, err := executeCommand(t, "items", "list")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
	require.NotNil(t, cliCfg)
	assert.Equal(t, cliconfig.SourceEnv, cliCfg.Sources["url"])

	// An explicit flag beats the environment.
	_, _, err = executeCommand(t, "--json=false", "items", "list")
	require.NoError(t, err)
	assert.False(t, cliCfg.JSON)
	assert.Equal(t, cliconfig.SourceFlag, cliCfg.Sources["json"])
}

func TestResolveCLIConfig_GlobalFile(t *testing.T) {
	isolateEnv(t)
	ts, _ := newItemServer(t)

	configDir, err := os.UserConfigDir()
	require.NoError(t, err)
	dir := filepath.Join(configDir, cliconfig.GlobalConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("url: "+ts.URL()+"\n"), 0o644))

	out, _, err := executeCommand(t, "items", "list")
	require.NoError(t, err)
	assert.Equal(t, "No items\n", out)
	assert.Equal(t, cliconfig.SourceGlobal, cliCfg.Sources["url"])
}

func TestVersionCommand(t *testing.T) {
	isolateEnv(t)

	out, _, err := executeCommand(t, "--json", "version")
	require.NoError(t, err)

	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, runtime.Version(), v.Go)
	assert.Equal(t, runtime.GOOS, v.OS)
	assert.Equal(t, runtime.GOARCH, v.Arch)
	assert.NotEmpty(t, v.Version)

	out, _, err = executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "itemd ")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}
