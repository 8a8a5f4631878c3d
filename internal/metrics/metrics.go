// Package metrics exposes per-run triage figures as Prometheus metrics.
// Runs are batch jobs, so the registry is written to a node_exporter
// textfile rather than scraped.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crimson-sun/logtriage/internal/model"
)

// Metrics holds a private registry and the collectors fed by each run.
type Metrics struct {
	reg *prometheus.Registry

	LinesRead         prometheus.Counter
	LinesDropped      prometheus.Counter
	Records           *prometheus.CounterVec
	IncidentTypes     prometheus.Gauge
	RepeatedIncidents prometheus.Gauge
	AnalysisDuration  prometheus.Histogram
	LastRun           prometheus.Gauge
}

// New creates a Metrics with every collector registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		LinesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "logtriage_lines_read_total",
			Help: "Total number of input lines read",
		}),
		LinesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "logtriage_lines_dropped_total",
			Help: "Total number of input lines that did not match the record format",
		}),
		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logtriage_records_total",
			Help: "Total number of classified records by severity",
		}, []string{"severity"}),
		IncidentTypes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "logtriage_incident_types",
			Help: "Distinct (service, message) incident types in the last run",
		}),
		RepeatedIncidents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "logtriage_repeated_incidents",
			Help: "Incident types seen more than once in the last run",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "logtriage_analysis_duration_seconds",
			Help:    "Duration of batch analysis in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "logtriage_last_run_timestamp_seconds",
			Help: "Unix time the last report was generated",
		}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Observe folds one report into the collectors.
func (m *Metrics) Observe(r model.Report, took time.Duration) {
	m.LinesRead.Add(float64(r.LinesRead))
	m.LinesDropped.Add(float64(r.LinesDropped))
	for _, sev := range model.Severities {
		m.Records.WithLabelValues(string(sev)).Add(float64(r.Stats.BySeverity[sev]))
	}
	m.IncidentTypes.Set(float64(r.Stats.IncidentTypes))
	m.RepeatedIncidents.Set(float64(r.Stats.RepeatedIncidents))
	m.AnalysisDuration.Observe(took.Seconds())
	if !r.GeneratedAt.IsZero() {
		m.LastRun.Set(float64(r.GeneratedAt.Unix()))
	}
}

// WriteTextfile atomically writes the registry in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
