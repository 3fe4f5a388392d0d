package items

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadSeedFile_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, `
- name: Widget
  qty: 2
- name: Gadget
  nested:
    color: blue
`)

	records, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Widget", records[0]["name"])
	assert.Equal(t, float64(2), records[0]["qty"], "numbers decode as they do from a JSON body")
	assert.Equal(t, map[string]any{"color": "blue"}, records[1]["nested"])
}

func TestLoadSeedFile_JSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.json")
	writeFile(t, path, `[{"name": "Item1"}, {"name": "Item2"}]`)

	records, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"name": "Item1"}, {"name": "Item2"}}, records)
}

func TestLoadSeedFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeedFile(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("not a list", func(t *testing.T) {
		path := filepath.Join(dir, "object.yaml")
		writeFile(t, path, "name: solo\n")
		_, err := LoadSeedFile(path)
		assert.Error(t, err)
	})

	t.Run("non-string nested key", func(t *testing.T) {
		path := filepath.Join(dir, "intkey.yaml")
		writeFile(t, path, "- name: a\n  meta:\n    1: one\n")
		_, err := LoadSeedFile(path)
		assert.ErrorContains(t, err, "record 0")
	})

	t.Run("infinite number", func(t *testing.T) {
		path := filepath.Join(dir, "inf.yaml")
		writeFile(t, path, "- name: a\n  qty: .inf\n")
		_, err := LoadSeedFile(path)
		assert.Error(t, err)
	})

	t.Run("null record", func(t *testing.T) {
		path := filepath.Join(dir, "null.yaml")
		writeFile(t, path, "- name: a\n- null\n")
		_, err := LoadSeedFile(path)
		assert.Error(t, err)
	})
}

func TestLoadSeedFiles_Glob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), "- name: fromB\n")
	writeFile(t, filepath.Join(dir, "a.yaml"), "- name: fromA\n")
	writeFile(t, filepath.Join(dir, "nested", "deep", "c.json"), `[{"name": "fromC"}]`)

	records, err := LoadSeedFiles([]string{
		filepath.Join(dir, "*.yaml"),
		filepath.Join(dir, "**", "*.json"),
	})
	require.NoError(t, err)

	var names []any
	for _, r := range records {
		names = append(names, r["name"])
	}
	assert.Equal(t, []any{"fromA", "fromB", "fromC"}, names)
}

func TestLoadSeedFiles_NoMatch(t *testing.T) {
	t.Parallel()

	_, err := LoadSeedFiles([]string{filepath.Join(t.TempDir(), "*.yaml")})
	assert.ErrorIs(t, err, ErrNoSeedFiles)
}

func TestLoadSeedFiles_FeedsStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "items.yaml"), "- name: One\n- name: Two\n")

	records, err := LoadSeedFiles([]string{filepath.Join(dir, "*.yaml")})
	require.NoError(t, err)

	store := NewStore(WithSeed(records))
	got, err := store.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Two", got.Fields["name"])
}
