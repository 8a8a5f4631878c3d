package model

import "time"

// LogRecord is one structured entry extracted from a raw log line.
type LogRecord struct {
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Level        string    `json:"level" yaml:"level"`     // as written in the source, informational only
	Service      string    `json:"service" yaml:"service"` // emitting component
	RawMessage   string    `json:"raw_message,omitempty" yaml:"raw_message,omitempty"`
	CleanMessage string    `json:"clean_message" yaml:"clean_message"` // empty = not meaningful for aggregation
	Severity     Severity  `json:"severity" yaml:"severity"`
	Line         int       `json:"line,omitempty" yaml:"line,omitempty"` // 1-based source line
}

// Key returns the incident key the record groups under.
func (r LogRecord) Key() IncidentKey {
	return IncidentKey{Service: r.Service, Message: r.CleanMessage}
}

// Aggregatable reports whether the record may take part in incident grouping.
func (r LogRecord) Aggregatable() bool {
	return r.CleanMessage != ""
}
