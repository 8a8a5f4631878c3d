package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/logtriage/internal/engine"
	"github.com/crimson-sun/logtriage/internal/engine/extractor"
)

var start = time.Date(2016, 9, 29, 0, 0, 0, 0, time.UTC)

func TestLinesCount(t *testing.T) {
	assert.Len(t, New(1).Lines(250, start), 250)
	assert.Empty(t, New(1).Lines(0, start))
	assert.Empty(t, New(1).Lines(-3, start))
}

func TestLinesReproducible(t *testing.T) {
	a := New(42).Lines(100, start)
	b := New(42).Lines(100, start)
	assert.Equal(t, a, b)

	c := New(43).Lines(100, start)
	assert.NotEqual(t, a, c)
}

func TestLinesAreMostlyRecordsInOrder(t *testing.T) {
	ex := extractor.New(nil)
	lines := New(7).Lines(1000, start)

	var records int
	prev := start
	for _, line := range lines {
		rec, ok := ex.Extract(line)
		if !ok {
			continue
		}
		records++
		assert.False(t, rec.Timestamp.Before(prev), "timestamps must not go backwards")
		assert.Contains(t, []string{"CBS", "CSI", "auth-service"}, rec.Service)
		prev = rec.Timestamp
	}
	assert.Greater(t, records, 900)
	assert.Less(t, records, 1000)
}

func TestLinesProduceRepeatedIncidents(t *testing.T) {
	lines := New(3).Lines(300, start)

	report, err := engine.New(engine.Options{}).Analyze(context.Background(), lines)
	require.NoError(t, err)

	require.NotEmpty(t, report.Summaries)
	require.NotEmpty(t, report.Ranked)
	assert.Equal(t, "failed to get next element hresult e fail", report.Ranked[0].Message)
	assert.Greater(t, report.Stats.BySeverity["CRITICAL"], 0)
}

func TestWithMalformedRate(t *testing.T) {
	ex := extractor.New(nil)

	for _, line := range New(5, WithMalformedRate(0)).Lines(200, start) {
		_, ok := ex.Extract(line)
		assert.True(t, ok, "line %q should be a record", line)
	}
	for _, line := range New(5, WithMalformedRate(1)).Lines(200, start) {
		_, ok := ex.Extract(line)
		assert.False(t, ok, "line %q should be malformed", line)
	}
}
