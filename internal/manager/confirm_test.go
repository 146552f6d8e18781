package manager

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipedConfirmer(input string) (*PromptConfirmer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &PromptConfirmer{
		in:         strings.NewReader(input),
		out:        out,
		isTerminal: false,
	}, out
}

func TestPromptConfirmer_Yes(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n", " YES \n"} {
		c, _ := newPipedConfirmer(input)
		ok, err := c.Confirm("Download?")
		require.NoError(t, err, input)
		assert.True(t, ok, input)
	}
}

func TestPromptConfirmer_No(t *testing.T) {
	for _, input := range []string{"n\n", "no\n", "NO\n"} {
		c, _ := newPipedConfirmer(input)
		ok, err := c.Confirm("Download?")
		require.NoError(t, err, input)
		assert.False(t, ok, input)
	}
}

func TestPromptConfirmer_RepromptsOnGarbage(t *testing.T) {
	c, out := newPipedConfirmer("maybe\nok\ny\n")
	ok, err := c.Confirm("Download?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Please answer 'y' or 'n'.")
	assert.Equal(t, 3, strings.Count(out.String(), "(y/n):"))
}

func TestPromptConfirmer_EOFDeclines(t *testing.T) {
	c, _ := newPipedConfirmer("")
	ok, err := c.Confirm("Download?")
	require.NoError(t, err)
	assert.False(t, ok)
}
