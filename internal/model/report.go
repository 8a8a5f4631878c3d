package model

import "time"

// Report is the complete result of analyzing one batch.
type Report struct {
	RunID        string            `json:"run_id" yaml:"run_id"`
	GeneratedAt  time.Time         `json:"generated_at" yaml:"generated_at"`
	LinesRead    int               `json:"lines_read" yaml:"lines_read"`
	LinesDropped int               `json:"lines_dropped" yaml:"lines_dropped"`
	Executive    string            `json:"executive_summary" yaml:"executive_summary"`
	Ranked       []RankedIncident  `json:"ranked" yaml:"ranked"`
	Summaries    []IncidentSummary `json:"summaries" yaml:"summaries"`
	Stats        Stats             `json:"stats" yaml:"stats"`
	Records      []LogRecord       `json:"records,omitempty" yaml:"records,omitempty"`
}

// Stats holds batch-wide distribution figures.
type Stats struct {
	Records           int              `json:"records" yaml:"records"`
	BySeverity        map[Severity]int `json:"by_severity" yaml:"by_severity"`
	ByService         map[string]int   `json:"by_service" yaml:"by_service"`
	PerMinuteMean     float64          `json:"per_minute_mean" yaml:"per_minute_mean"`
	PerMinuteStdDev   float64          `json:"per_minute_stddev" yaml:"per_minute_stddev"`
	ActiveMinutes     int              `json:"active_minutes" yaml:"active_minutes"`
	IncidentTypes     int              `json:"incident_types" yaml:"incident_types"`
	RepeatedIncidents int              `json:"repeated_incidents" yaml:"repeated_incidents"`
}
