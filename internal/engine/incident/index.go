package incident

import (
	"time"

	"github.com/crimson-sun/logtriage/internal/model"
)

// Builder accumulates occurrences before an Index is frozen.
// A Builder is not safe for concurrent use; build one per worker and merge.
type Builder struct {
	times map[model.IncidentKey][]time.Time
	order []model.IncidentKey
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{times: make(map[model.IncidentKey][]time.Time)}
}

// Add records one occurrence of rec. Records without a clean message are
// ignored.
func (b *Builder) Add(rec model.LogRecord) {
	if !rec.Aggregatable() {
		return
	}
	b.add(rec.Key(), rec.Timestamp)
}

// Merge appends every occurrence held by other. Keys first seen in other
// keep their relative order after the keys already present in b.
func (b *Builder) Merge(other *Builder) {
	for _, key := range other.order {
		for _, ts := range other.times[key] {
			b.add(key, ts)
		}
	}
}

// Build freezes the accumulated occurrences into an Index. The Builder
// must not be used afterwards.
func (b *Builder) Build() *Index {
	ix := &Index{times: b.times, order: b.order}
	b.times = nil
	b.order = nil
	return ix
}

func (b *Builder) add(key model.IncidentKey, ts time.Time) {
	if _, seen := b.times[key]; !seen {
		b.order = append(b.order, key)
	}
	b.times[key] = append(b.times[key], ts)
}

// Index maps each incident key to the timestamps of its occurrences.
// It is read-only once built.
type Index struct {
	times map[model.IncidentKey][]time.Time
	order []model.IncidentKey
}

// BuildIndex indexes every aggregatable record.
func BuildIndex(records []model.LogRecord) *Index {
	b := NewBuilder()
	for _, rec := range records {
		b.Add(rec)
	}
	return b.Build()
}

// Count returns how many occurrences were recorded for key.
func (ix *Index) Count(key model.IncidentKey) int {
	return len(ix.times[key])
}

// Timestamps returns a copy of the occurrence times for key.
func (ix *Index) Timestamps(key model.IncidentKey) []time.Time {
	ts := ix.times[key]
	if len(ts) == 0 {
		return nil
	}
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out
}

// Keys returns the indexed keys in first-occurrence order.
func (ix *Index) Keys() []model.IncidentKey {
	out := make([]model.IncidentKey, len(ix.order))
	copy(out, ix.order)
	return out
}

// Len returns the number of distinct incident keys.
func (ix *Index) Len() int {
	return len(ix.order)
}

// span returns the earliest and latest occurrence of key.
func (ix *Index) span(key model.IncidentKey) (first, last time.Time) {
	ts := ix.times[key]
	if len(ts) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last = ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	return first, last
}
