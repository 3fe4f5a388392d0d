package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/itemd/pkg/items"
)

func decodeItem(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), s)
	return m
}

func TestItemsCommands_Lifecycle(t *testing.T) {
	isolateEnv(t)
	ts, store := newItemServer(t)

	out, _, err := executeCommand(t, "--url", ts.URL(), "--json", "items", "create", "--set", "name=Widget", "--set", "qty=3")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Widget", "qty": float64(3)}, decodeItem(t, out))

	out, _, err = executeCommand(t, "--url", ts.URL(), "--json", "items", "get", "1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", decodeItem(t, out)["name"])

	out, _, err = executeCommand(t, "--url", ts.URL(), "--json", "items", "update", "1", "--set", "qty=4")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Widget", "qty": float64(4)}, decodeItem(t, out))

	out, _, err = executeCommand(t, "--url", ts.URL(), "--json", "items", "list", "--filter", "qty > 3")
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, float64(1), list[0]["id"])

	out, _, err = executeCommand(t, "--url", ts.URL(), "items", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted item 1\n", out)
	assert.Equal(t, 0, store.Count())

	_, _, err = executeCommand(t, "--url", ts.URL(), "items", "get", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, items.ErrNotFound)
}

func TestItemsCreate_DataAndSetMerge(t *testing.T) {
	isolateEnv(t)
	ts, store := newItemServer(t)

	_, _, err := executeCommand(t, "--url", ts.URL(), "items", "create",
		"--data", `{"name":"Widget","tags":["a"]}`,
		"--set", "name=Gadget")
	require.NoError(t, err)

	item, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Gadget", "tags": []any{"a"}}, item.Fields)
}

func TestItemsCreate_InvalidInput(t *testing.T) {
	isolateEnv(t)
	ts, store := newItemServer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"data not an object", []string{"--data", `[1,2]`}},
		{"malformed data", []string{"--data", `{"name":`}},
		{"set without equals", []string{"--set", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--url", ts.URL(), "items", "create"}, tt.args...)
			_, _, err := executeCommand(t, args...)
			assert.Error(t, err)
		})
	}
	assert.Equal(t, 0, store.Count())
}

func TestItemsList_Table(t *testing.T) {
	isolateEnv(t)
	ts, store := newItemServer(t)

	out, _, err := executeCommand(t, "--url", ts.URL(), "items", "list")
	require.NoError(t, err)
	assert.Equal(t, "No items\n", out)

	store.Create(map[string]any{"name": "Widget"})
	store.Create(map[string]any{"name": "Gadget", "qty": 2})

	out, _, err = executeCommand(t, "--url", ts.URL(), "items", "list")
	require.NoError(t, err)
	assert.Equal(t, "ID  FIELDS\n1   name=\"Widget\"\n2   name=\"Gadget\" qty=2\n", out)
}

func TestItemsList_BadFilter(t *testing.T) {
	isolateEnv(t)
	ts, _ := newItemServer(t)

	_, _, err := executeCommand(t, "--url", ts.URL(), "items", "list", "--filter", "name ==")
	assert.Error(t, err)
}

func TestItemsGet_InvalidID(t *testing.T) {
	isolateEnv(t)
	ts, _ := newItemServer(t)

	_, _, err := executeCommand(t, "--url", ts.URL(), "items", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid item id "abc"`)
}

func TestItemsCommands_ServerDown(t *testing.T) {
	isolateEnv(t)
	ts, _ := newItemServer(t)
	url := ts.URL()
	ts.Stop()

	_, _, err := executeCommand(t, "--url", url, "--timeout", "2", "items", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerNotRunning)
	assert.Contains(t, err.Error(), url)
}
