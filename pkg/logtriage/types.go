package logtriage

import (
	"time"

	"github.com/crimson-sun/logtriage/internal/model"
)

// Severity levels, from least to most urgent.
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Record is one parsed and classified log line.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	Level        string    `json:"level"`
	Service      string    `json:"service"`
	RawMessage   string    `json:"raw_message"`
	CleanMessage string    `json:"clean_message"` // empty when too short to aggregate
	Severity     string    `json:"severity"`      // LOW, MEDIUM, HIGH, CRITICAL
	Line         int       `json:"line"`          // 1-based source line
}

// Incident is one ranked (service, message) group.
type Incident struct {
	Service   string    `json:"service"`
	Message   string    `json:"message"` // <=120 runes
	Frequency int       `json:"frequency"`
	LastSeen  time.Time `json:"last_seen"`
}

// Summary describes a repeated incident.
type Summary struct {
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Text      string    `json:"text"`
}

// Stats holds batch-level figures.
type Stats struct {
	Records           int            `json:"records"`
	BySeverity        map[string]int `json:"by_severity"`
	ByService         map[string]int `json:"by_service"`
	PerMinuteMean     float64        `json:"per_minute_mean"`
	PerMinuteStdDev   float64        `json:"per_minute_stddev"`
	IncidentTypes     int            `json:"incident_types"`
	RepeatedIncidents int            `json:"repeated_incidents"`
}

// Report is the result of analyzing one batch.
type Report struct {
	RunID        string     `json:"run_id"`
	GeneratedAt  time.Time  `json:"generated_at"`
	LinesRead    int        `json:"lines_read"`
	LinesDropped int        `json:"lines_dropped"`
	Executive    string     `json:"executive_summary"`
	Ranked       []Incident `json:"ranked"`
	Summaries    []Summary  `json:"summaries"`
	Stats        Stats      `json:"stats"`
	Records      []Record   `json:"records"`
}

func recordFromModel(r model.LogRecord) Record {
	return Record{
		Timestamp:    r.Timestamp,
		Level:        r.Level,
		Service:      r.Service,
		RawMessage:   r.RawMessage,
		CleanMessage: r.CleanMessage,
		Severity:     string(r.Severity),
		Line:         r.Line,
	}
}

func reportFromModel(r model.Report) Report {
	out := Report{
		RunID:        r.RunID,
		GeneratedAt:  r.GeneratedAt,
		LinesRead:    r.LinesRead,
		LinesDropped: r.LinesDropped,
		Executive:    r.Executive,
		Ranked:       make([]Incident, len(r.Ranked)),
		Summaries:    make([]Summary, len(r.Summaries)),
		Records:      make([]Record, len(r.Records)),
		Stats: Stats{
			Records:           r.Stats.Records,
			BySeverity:        make(map[string]int, len(r.Stats.BySeverity)),
			ByService:         r.Stats.ByService,
			PerMinuteMean:     r.Stats.PerMinuteMean,
			PerMinuteStdDev:   r.Stats.PerMinuteStdDev,
			IncidentTypes:     r.Stats.IncidentTypes,
			RepeatedIncidents: r.Stats.RepeatedIncidents,
		},
	}
	for i, inc := range r.Ranked {
		out.Ranked[i] = Incident(inc)
	}
	for i, s := range r.Summaries {
		out.Summaries[i] = Summary(s)
	}
	for i, rec := range r.Records {
		out.Records[i] = recordFromModel(rec)
	}
	for sev, n := range r.Stats.BySeverity {
		out.Stats.BySeverity[string(sev)] = n
	}
	return out
}
