package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWellFormedLine(t *testing.T) {
	e := New(nil)

	rec, ok := e.Extract("2016-09-29 00:01:47, Info                  CBS    Failed to get next element [HRESULT = 0x800f080d]")
	require.True(t, ok)

	assert.Equal(t, time.Date(2016, 9, 29, 0, 1, 47, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, "Info", rec.Level)
	assert.Equal(t, "CBS", rec.Service)
	assert.Equal(t, "Failed to get next element [HRESULT = 0x800f080d]", rec.RawMessage)
	assert.Empty(t, rec.CleanMessage)
}

func TestExtractTrimsSurroundingWhitespace(t *testing.T) {
	e := New(nil)

	rec, ok := e.Extract("  2016-09-29 00:01:47, Warning CSI Retry scheduled \r\n")
	require.True(t, ok)
	assert.Equal(t, "Warning", rec.Level)
	assert.Equal(t, "CSI", rec.Service)
	assert.Equal(t, "Retry scheduled", rec.RawMessage)
}

func TestExtractNoSpaceAfterComma(t *testing.T) {
	e := New(nil)

	rec, ok := e.Extract("2016-09-29 00:01:47,Info CBS Loaded Servicing Stack")
	require.True(t, ok)
	assert.Equal(t, "Loaded Servicing Stack", rec.RawMessage)
}

func TestExtractRejectsMalformedLines(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name string
		line string
	}{
		{"garbage", "garbage unparseable line"},
		{"empty", ""},
		{"whitespace", "   \t "},
		{"no comma", "2016-09-29 00:01:47 Info CBS Failed to start"},
		{"missing component", "2016-09-29 00:01:47, Info"},
		{"missing message separator", "2016-09-29 00:01:47, Info CBS"},
		{"slash date", "2016/09/29 00:01:47, Info CBS Failed to start"},
		{"leading text", "prefix 2016-09-29 00:01:47, Info CBS Failed to start"},
		{"punctuated component", "2016-09-29 00:01:47, Info auth/service could not verify token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := e.Extract(tt.line)
			assert.False(t, ok)
		})
	}
}

func TestExtractRejectsImpossibleTimestamp(t *testing.T) {
	e := New(nil)

	for _, line := range []string{
		"2016-13-29 00:01:47, Info CBS Failed to start",
		"2016-02-30 00:01:47, Info CBS Failed to start",
		"2016-09-29 25:01:47, Info CBS Failed to start",
	} {
		_, ok := e.Extract(line)
		assert.False(t, ok, line)
	}
}

func TestExtractUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	e := New(loc)

	rec, ok := e.Extract("2016-09-29 02:00:00, Info CBS Session started for client")
	require.True(t, ok)
	assert.True(t, rec.Timestamp.Equal(time.Date(2016, 9, 29, 0, 0, 0, 0, time.UTC)))
}

func TestExtractHyphenatedComponent(t *testing.T) {
	e := New(nil)

	rec, ok := e.Extract("2024-03-01 10:00:00, Error auth-service Could not verify token")
	require.True(t, ok)
	assert.Equal(t, "auth-service", rec.Service)
	assert.Equal(t, "Could not verify token", rec.RawMessage)

	rec, ok = e.Extract("2016-09-28 04:30:31, Info Microsoft.Windows.CSI Loaded component store")
	require.True(t, ok)
	assert.Equal(t, "Microsoft.Windows.CSI", rec.Service)
}

func TestExtractEmptyMessageAfterSeparator(t *testing.T) {
	e := New(nil)

	// Trailing whitespace is trimmed before matching, so the message
	// separator is gone and the line no longer has the expected shape.
	_, ok := e.Extract("2016-09-29 00:01:47, Info CBS   ")
	assert.False(t, ok)
}
