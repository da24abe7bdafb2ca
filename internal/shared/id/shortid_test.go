package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id, err := Generate(12)
	require.NoError(t, err)
	assert.Len(t, id, 12)

	for _, r := range id {
		assert.Contains(t, alphabet, string(r))
	}

	// Zero and negative lengths fall back to the default.
	id, err = Generate(0)
	require.NoError(t, err)
	assert.Len(t, id, DefaultLength)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := MustGenerate(DefaultLength)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestObjectName(t *testing.T) {
	name, err := ObjectName("screen shot (1).png")
	require.NoError(t, err)

	parts := strings.SplitN(name, "_", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], DefaultLength)
	assert.Equal(t, "screen-shot--1-.png", parts[1])
}

func TestObjectName_StripsPaths(t *testing.T) {
	name, err := ObjectName(`C:\Users\me\clip.mp4`)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_clip.mp4"), name)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, `\`)
}

func TestObjectName_EmptyFilename(t *testing.T) {
	name, err := ObjectName("")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_upload"), name)
}
