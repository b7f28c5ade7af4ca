package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	destinations := []string{"sess", "build-1", "agent_2", "A-Z_mixed-09", "x"}

	for _, dest := range destinations {
		parsed, ok := Parse(dest + ": hello world")
		require.True(t, ok, "destination %q", dest)
		assert.Equal(t, dest, parsed.Destination)
		assert.Equal(t, "hello world", parsed.Payload)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"missing separator", "hello world"},
		{"empty destination", ": hello"},
		{"empty text", ""},
		{"colon only", ":"},
		{"empty payload", "sess:"},
		{"payload is single space", "sess: "},
		{"destination with space", "my session: hi"},
		{"destination with dot", "a.b: hi"},
		{"destination with leading space", " sess: hi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Parse(tc.text)
			assert.False(t, ok)
		})
	}
}

func TestParsePreservesMultilinePayload(t *testing.T) {
	parsed, ok := Parse("sess: line1\nline2")
	require.True(t, ok)
	assert.Equal(t, "sess", parsed.Destination)
	assert.Equal(t, "line1\nline2", parsed.Payload)
}

func TestParseStripsExactlyOneLeadingSpace(t *testing.T) {
	parsed, ok := Parse("sess:  double spaced")
	require.True(t, ok)
	assert.Equal(t, " double spaced", parsed.Payload)

	parsed, ok = Parse("sess:no space")
	require.True(t, ok)
	assert.Equal(t, "no space", parsed.Payload)
}

func TestParsePayloadMayContainColons(t *testing.T) {
	parsed, ok := Parse("build-1: note: colons are fine")
	require.True(t, ok)
	assert.Equal(t, "build-1", parsed.Destination)
	assert.Equal(t, "note: colons are fine", parsed.Payload)
}

func TestParseIsCaseSensitive(t *testing.T) {
	parsed, ok := Parse("Build-1: hi")
	require.True(t, ok)
	assert.Equal(t, "Build-1", parsed.Destination)
}
