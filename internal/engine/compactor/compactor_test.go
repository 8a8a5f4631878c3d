package compactor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Preview tests ---

func TestPreviewShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "short", Preview("short", PreviewLen))
}

func TestPreviewExactLength(t *testing.T) {
	s := strings.Repeat("a", PreviewLen)
	assert.Equal(t, s, Preview(s, PreviewLen))
}

func TestPreviewCutsToBound(t *testing.T) {
	s := strings.Repeat("abc ", 50) // 200 runes
	got := Preview(s, PreviewLen)
	assert.Equal(t, PreviewLen, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(s, got))
}

func TestPreviewRuneSafety(t *testing.T) {
	// CJK characters are 3 bytes each in UTF-8.
	input := strings.Repeat("日本語", 100)
	got := Preview(input, 10)
	require.True(t, utf8.ValidString(got))
	assert.Equal(t, 10, utf8.RuneCountInString(got))
}

func TestPreviewZeroAndNegative(t *testing.T) {
	assert.Equal(t, "", Preview("abc", 0))
	assert.Equal(t, "", Preview("abc", -1))
}

// --- truncate tests ---

func TestTruncateAddsMarker(t *testing.T) {
	assert.Equal(t, "hello world...", truncate("hello world this is a test", 11))
}

func TestTruncateEmoji(t *testing.T) {
	input := strings.Repeat("🔥", 50)
	got := truncate(input, 5)
	require.True(t, utf8.ValidString(got))
	assert.Equal(t, 8, utf8.RuneCountInString(got)) // 5 + "..."
}

func TestTruncateShortInput(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
}

// --- Compact tests ---

func TestCompactByVerbosity(t *testing.T) {
	long := strings.Repeat("x", 3000)

	assert.Empty(t, New(Minimal).Compact(long))

	std := New(Standard).Compact(long)
	assert.Equal(t, standardRawLen+3, utf8.RuneCountInString(std))
	assert.True(t, strings.HasSuffix(std, "..."))

	assert.Equal(t, long, New(Full).Compact(long))
	assert.Equal(t, "short", New(Standard).Compact("short"))
}

func TestParseVerbosity(t *testing.T) {
	assert.Equal(t, Minimal, ParseVerbosity("minimal"))
	assert.Equal(t, Full, ParseVerbosity("FULL"))
	assert.Equal(t, Standard, ParseVerbosity("standard"))
	assert.Equal(t, Standard, ParseVerbosity("bogus"))
	assert.Equal(t, "full", Full.String())
}
