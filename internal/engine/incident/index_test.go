package incident

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/logtriage/internal/model"
)

var t0 = time.Date(2016, 9, 29, 0, 0, 0, 0, time.UTC)

func record(service, clean string, offset time.Duration) model.LogRecord {
	return model.LogRecord{
		Timestamp:    t0.Add(offset),
		Level:        "Info",
		Service:      service,
		RawMessage:   clean,
		CleanMessage: clean,
	}
}

func TestBuildIndexCountsByKey(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("CBS", "failed to get next element", 0),
		record("CBS", "failed to get next element", time.Second),
		record("CSI", "failed to get next element", 2*time.Second),
		record("CBS", "loaded servicing stack ok", 3*time.Second),
	})

	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, 2, ix.Count(model.IncidentKey{Service: "CBS", Message: "failed to get next element"}))
	assert.Equal(t, 1, ix.Count(model.IncidentKey{Service: "CSI", Message: "failed to get next element"}))
	assert.Equal(t, 0, ix.Count(model.IncidentKey{Service: "CBS", Message: "unknown"}))
}

func TestBuildIndexSkipsEmptyCleanMessage(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("CBS", "", 0),
		record("CBS", "", time.Second),
	})

	assert.Equal(t, 0, ix.Len())
	assert.Equal(t, 0, ix.Count(model.IncidentKey{Service: "CBS"}))
	assert.Empty(t, ix.Keys())
}

func TestIndexKeysFirstOccurrenceOrder(t *testing.T) {
	ix := BuildIndex([]model.LogRecord{
		record("B", "second key here", 0),
		record("A", "first key here", time.Second),
		record("B", "second key here", 2*time.Second),
	})

	assert.Equal(t, []model.IncidentKey{
		{Service: "B", Message: "second key here"},
		{Service: "A", Message: "first key here"},
	}, ix.Keys())
}

func TestIndexTimestampsIsCopy(t *testing.T) {
	key := model.IncidentKey{Service: "CBS", Message: "failed to get next element"}
	ix := BuildIndex([]model.LogRecord{record(key.Service, key.Message, 0)})

	ts := ix.Timestamps(key)
	require.Len(t, ts, 1)
	ts[0] = time.Time{}

	assert.Equal(t, t0, ix.Timestamps(key)[0])
	assert.Nil(t, ix.Timestamps(model.IncidentKey{}))
}

func TestBuilderMergeMatchesSinglePass(t *testing.T) {
	records := []model.LogRecord{
		record("CBS", "failed to get next element", 0),
		record("CSI", "warning unrecognized attribute", time.Second),
		record("CBS", "failed to get next element", 2*time.Second),
		record("CBS", "session finalized for client", 3*time.Second),
		record("CSI", "warning unrecognized attribute", 4*time.Second),
	}

	left, right := NewBuilder(), NewBuilder()
	for _, r := range records[:2] {
		left.Add(r)
	}
	for _, r := range records[2:] {
		right.Add(r)
	}
	left.Merge(right)
	merged := left.Build()

	single := BuildIndex(records)
	assert.Equal(t, single.Keys(), merged.Keys())
	for _, key := range single.Keys() {
		assert.Equal(t, single.Timestamps(key), merged.Timestamps(key))
	}
}
