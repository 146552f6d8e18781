package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestNew(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, New(FormatJSON))
	assert.IsType(t, &TextFormatter{}, New(FormatText))
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSONFormatter().Format(&Result{TestCases: []string{"a", "b"}})
	require.NoError(t, err)

	var decoded struct {
		TestCases []string `json:"test_cases"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded.TestCases)
}

func TestJSONFormatter_EmptyResultIsArray(t *testing.T) {
	out, err := NewJSONFormatter().Format(&Result{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"test_cases": []}`, string(out))
	assert.NotContains(t, string(out), "null")
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(&Result{TestCases: []string{"first case", "second case"}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1. first case", lines[0])
	assert.Equal(t, "2. second case", lines[1])

	// Plain text must carry no JSON punctuation.
	for _, ch := range []string{"{", "}", "[", "]", `"`} {
		assert.NotContains(t, string(out), ch)
	}
}

func TestTextFormatter_Empty(t *testing.T) {
	out, err := NewTextFormatter().Format(&Result{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
