package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	tests := []struct {
		input      string
		delimiters []rune
		key, value string
		ok         bool
	}{
		{"Content-Type:application/json", nil, "Content-Type", "application/json", true},
		{"name=Widget", []rune{'='}, "name", "Widget", true},
		{"expr=a==b", []rune{'='}, "expr", "a==b", true},
		{"novalue", []rune{'='}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, ok := KeyValue(tt.input, tt.delimiters...)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFields(t *testing.T) {
	fields, err := Fields([]string{
		"name=Widget",
		"qty=3",
		"active=true",
		"tags=[\"a\",\"b\"]",
		"quoted=\"42\"",
		"empty=",
		"name=Gadget",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":   "Gadget",
		"qty":    float64(3),
		"active": true,
		"tags":   []any{"a", "b"},
		"quoted": "42",
		"empty":  "",
	}, fields)
}

func TestFields_Invalid(t *testing.T) {
	for _, pair := range []string{"noequals", "=value", " =x"} {
		_, err := Fields([]string{pair})
		assert.Error(t, err, pair)
	}
}

func TestObject(t *testing.T) {
	obj, err := Object(`{"name":"x","n":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x", "n": float64(1)}, obj)

	obj, err = Object("  ")
	require.NoError(t, err)
	assert.Empty(t, obj)

	_, err = Object(`[1]`)
	assert.Error(t, err)
	_, err = Object(`{"name":`)
	assert.Error(t, err)
}

func TestSplitTrim(t *testing.T) {
	assert.Nil(t, SplitTrim("", ","))
	assert.Equal(t, []string{"a", "b"}, SplitTrim(" a, ,b ", ","))
}
