package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int64", int64(-100), "-100"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"array", []any{1, "a", false}, `[1,"a",false]`},
		{"object slice", []map[string]any{{"b": 1}, {"a": 2}}, `[{"b":1},{"a":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestMarshalSortsKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"y": 1, "x": 2},
		"beta":  3,
	}

	out, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"x":2,"y":1},"beta":3,"zebra":1}`, string(out))
}

func TestMarshalRejectsFloatsAndNull(t *testing.T) {
	_, err := Marshal(map[string]any{"price": 2.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = Marshal([]any{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null is forbidden")
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	out, err := Marshal("<a&b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(out))
}

func TestMarshalNFC(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	out, err := Marshal("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"caf\u00e9\"", string(out))
}

func TestMarshalLineSeparators(t *testing.T) {
	out, err := Marshal("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(out))

	// A literal backslash followed by u2028 text must stay escaped.
	out, err = Marshal(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(out))
}

func TestCompareUTF16(t *testing.T) {
	// The high surrogate 0xD83D sorts below 0xFF61, the reverse of UTF-8 byte order.
	keys := SortedKeys(map[string]int{"\uFF61": 1, "\U0001F600": 2})
	assert.Equal(t, []string{"\U0001F600", "\uFF61"}, keys)
}
