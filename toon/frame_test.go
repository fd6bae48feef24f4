package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLines_Depths(t *testing.T) {
	frames, err := frameLines("a: 1\n  b: 2\n    c: 3\n", DefaultOptions())
	require.Nil(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, 0, frames[0].depth)
	assert.Equal(t, 1, frames[1].depth)
	assert.Equal(t, 2, frames[2].depth)
	assert.Equal(t, "b: 2", frames[1].text)
	assert.Equal(t, 2, frames[1].line)
}

func TestFrameLines_LineEndings(t *testing.T) {
	frames, err := frameLines("a: 1\r\nb: 2\rc: 3\n", DefaultOptions())
	require.Nil(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "b: 2", frames[1].text)
	assert.Equal(t, "c: 3", frames[2].text)
}

func TestFrameLines_TrailingAndBlank(t *testing.T) {
	frames, err := frameLines("a: 1\n\nb: 2\n", DefaultOptions())
	require.Nil(t, err)
	require.Len(t, frames, 3)
	assert.True(t, frames[1].blank)
}

func TestFrameLines_StrictIndentErrors(t *testing.T) {
	_, err := frameLines("a:\n\tb: 1\n", DefaultOptions())
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Invalid indentation")
	assert.Equal(t, 2, err.Line)

	_, err = frameLines("a:\n   b: 1\n", DefaultOptions())
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Invalid indentation")
}

func TestFrameLines_NonStrictTolerates(t *testing.T) {
	opts := DefaultOptions()
	opts.Strict = false
	frames, err := frameLines("a:\n   b: 1\n", opts)
	require.Nil(t, err)
	assert.Equal(t, 1, frames[1].depth) // floor(3/2)
}

func TestFrameLines_CustomIndentSize(t *testing.T) {
	opts := DefaultOptions()
	opts.IndentSize = 4
	frames, err := frameLines("a:\n    b: 1\n", opts)
	require.Nil(t, err)
	assert.Equal(t, 1, frames[1].depth)

	_, err = frameLines("a:\n  b: 1\n", opts)
	require.NotNil(t, err)
}
