package incident

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/logtriage/internal/model"
)

func TestRankEmpty(t *testing.T) {
	a := New(Config{})
	ranked := a.Rank(BuildIndex(nil))
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankByFrequencyThenLastSeen(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("A", "single occurrence message", 10*time.Minute),
		record("B", "twice but older message", 0),
		record("B", "twice but older message", time.Minute),
		record("C", "twice and newer message", 2*time.Minute),
		record("C", "twice and newer message", 5*time.Minute),
		record("D", "three times message here", 0),
		record("D", "three times message here", time.Second),
		record("D", "three times message here", 2*time.Second),
	})

	ranked := New(Config{}).Rank(ix)
	require.Len(t, ranked, 4)

	var services []string
	for _, r := range ranked {
		services = append(services, r.Service)
	}
	assert.Equal(t, []string{"D", "C", "B", "A"}, services)
	assert.Equal(t, 3, ranked[0].Frequency)
	assert.Equal(t, t0.Add(5*time.Minute), ranked[1].LastSeen)
	assert.Equal(t, t0.Add(10*time.Minute), ranked[3].LastSeen)
}

func TestRankLastSeenIsMaxNotLast(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("A", "out of order timestamps", 5*time.Minute),
		record("A", "out of order timestamps", time.Minute),
	})

	ranked := New(Config{}).Rank(ix)
	require.Len(t, ranked, 1)
	assert.Equal(t, t0.Add(5*time.Minute), ranked[0].LastSeen)
}

func TestRankFullTiesKeepAllEntries(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("A", "same time message one", 0),
		record("B", "same time message two", 0),
		record("C", "same time message three", 0),
	})

	ranked := New(Config{}).Rank(ix)
	require.Len(t, ranked, 3)
	assert.Equal(t, "A", ranked[0].Service)
	assert.Equal(t, "C", ranked[2].Service)
}

func TestRankPreviewDoesNotAffectGrouping(t *testing.T) {
	prefix := strings.Repeat("word ", 30) // 150 runes
	ix := BuildIndex([]model.LogRecord{
		record("CBS", prefix+"alpha", 0),
		record("CBS", prefix+"beta", time.Second),
	})

	ranked := New(Config{}).Rank(ix)
	require.Len(t, ranked, 2, "distinct full messages must stay distinct groups")
	for _, r := range ranked {
		assert.Equal(t, 120, utf8.RuneCountInString(r.Message))
		assert.Equal(t, 1, r.Frequency)
	}
	assert.Equal(t, ranked[0].Message, ranked[1].Message)
}

func TestRankTop(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("A", "message number one", 0),
		record("B", "message number two", 0),
		record("B", "message number two", time.Second),
		record("C", "message number three", 0),
	})

	ranked := New(Config{Top: 1}).Rank(ix)
	require.Len(t, ranked, 1)
	assert.Equal(t, "B", ranked[0].Service)
}

func TestSummariesHuman(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var records []model.LogRecord
	for _, off := range []time.Duration{5 * time.Minute, 0, 10 * time.Minute} {
		records = append(records, model.LogRecord{
			Timestamp:    start.Add(off),
			Service:      "auth-service",
			CleanMessage: "could not verify token",
		})
	}
	records = append(records, model.LogRecord{
		Timestamp:    start,
		Service:      "auth-service",
		CleanMessage: "user logged in successfully",
	})

	sums := New(Config{}).Summaries(BuildIndex(records))
	require.Len(t, sums, 1)

	s := sums[0]
	assert.Equal(t, "auth-service", s.Service)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, start, s.StartTime)
	assert.Equal(t, start.Add(10*time.Minute), s.EndTime)
	assert.Equal(t,
		"There were 3 similar issues in the auth-service service between 2024-03-01 10:00:00 and 2024-03-01 10:10:00.",
		s.Text)
}

func TestSummariesTechnical(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("CBS", "failed to get next element hresult", 0),
		record("CBS", "failed to get next element hresult", 47*time.Second),
	})

	sums := New(Config{Mode: model.SummaryTechnical}).Summaries(ix)
	require.Len(t, sums, 1)
	assert.Equal(t,
		"2 occurrences in CBS between 2016-09-29 00:00:00 and 2016-09-29 00:00:47: failed to get next element hresult",
		sums[0].Text)
}

func TestSummariesEmpty(t *testing.T) {
	sums := New(Config{}).Summaries(BuildIndex([]model.LogRecord{
		record("CBS", "only once message here", 0),
	}))
	assert.NotNil(t, sums)
	assert.Empty(t, sums)
}

func TestRenderModesShareFields(t *testing.T) {
	s := model.IncidentSummary{
		Service:   "CSI",
		Message:   "warning unrecognized attribute",
		Count:     4,
		StartTime: t0,
		EndTime:   t0.Add(time.Hour),
	}

	human := Render(s, model.SummaryHuman)
	tech := Render(s, model.SummaryTechnical)
	for _, text := range []string{human, tech} {
		assert.Contains(t, text, "4")
		assert.Contains(t, text, "CSI")
		assert.Contains(t, text, "2016-09-29 00:00:00")
		assert.Contains(t, text, "2016-09-29 01:00:00")
	}
	assert.NotContains(t, human, s.Message)
	assert.Contains(t, tech, s.Message)
}
