// Package stats computes batch-wide distribution figures for a report.
package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/crimson-sun/logtriage/internal/model"
)

// Compute summarizes classified records. Per-minute figures are taken over
// the minutes that saw at least one record.
func Compute(records []model.LogRecord) model.Stats {
	s := model.Stats{
		Records:    len(records),
		BySeverity: make(map[model.Severity]int, len(model.Severities)),
		ByService:  make(map[string]int),
	}
	for _, sev := range model.Severities {
		s.BySeverity[sev] = 0
	}
	if len(records) == 0 {
		return s
	}

	perMinute := make(map[time.Time]float64)
	types := make(map[model.IncidentKey]int)
	for _, r := range records {
		if r.Severity != "" {
			s.BySeverity[r.Severity]++
		}
		s.ByService[r.Service]++
		perMinute[r.Timestamp.Truncate(time.Minute)]++
		if r.Aggregatable() {
			types[r.Key()]++
		}
	}

	s.IncidentTypes = len(types)
	for _, n := range types {
		if n > 1 {
			s.RepeatedIncidents++
		}
	}

	counts := bucketCounts(perMinute)
	s.ActiveMinutes = len(counts)
	if len(counts) == 1 {
		s.PerMinuteMean = counts[0]
		return s
	}
	s.PerMinuteMean, s.PerMinuteStdDev = stat.MeanStdDev(counts, nil)
	return s
}

// bucketCounts returns the bucket values in chronological order so the
// floating-point sums are reproducible.
func bucketCounts(buckets map[time.Time]float64) []float64 {
	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = buckets[k]
	}
	return out
}
