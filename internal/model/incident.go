package model

import "time"

// IncidentKey identifies an incident type. Two records are the same
// incident iff service and full clean message are equal.
type IncidentKey struct {
	Service string
	Message string
}

// RankedIncident is one row of the "what to look at first" list.
type RankedIncident struct {
	Service   string    `json:"service" yaml:"service"`
	Message   string    `json:"message" yaml:"message"` // preview, <=120 runes
	Frequency int       `json:"frequency" yaml:"frequency"`
	LastSeen  time.Time `json:"last_seen" yaml:"last_seen"`
}

// IncidentSummary describes an incident type that occurred more than once.
type IncidentSummary struct {
	Service   string    `json:"service" yaml:"service"`
	Message   string    `json:"message" yaml:"message"`
	Count     int       `json:"count" yaml:"count"`
	StartTime time.Time `json:"start_time" yaml:"start_time"`
	EndTime   time.Time `json:"end_time" yaml:"end_time"`
	Text      string    `json:"text" yaml:"text"`
}

// SummaryMode selects the phrasing of incident summaries.
type SummaryMode string

const (
	SummaryHuman     SummaryMode = "human"
	SummaryTechnical SummaryMode = "technical"
)

// ParseSummaryMode maps a string to a SummaryMode, defaulting to human.
func ParseSummaryMode(s string) SummaryMode {
	if s == string(SummaryTechnical) {
		return SummaryTechnical
	}
	return SummaryHuman
}
