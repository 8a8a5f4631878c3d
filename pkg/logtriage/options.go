package logtriage

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	location          *time.Location
	minTokens         int
	highKeywords      []string
	mediumKeywords    []string
	criticalThreshold int
	highThreshold     int
	mode              string
	top               int
	workers           int
	logger            *zap.Logger
}

// Option configures an Analyzer.
type Option func(*options)

// WithLocation sets the zone timestamps are interpreted in. Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// WithMinTokens sets how many tokens a normalized message needs to take
// part in aggregation. Default: 3.
func WithMinTokens(n int) Option {
	return func(o *options) {
		o.minTokens = n
	}
}

// WithKeywords replaces the keyword lists used for base severity.
// High keywords are checked first.
func WithKeywords(high, medium []string) Option {
	return func(o *options) {
		o.highKeywords = high
		o.mediumKeywords = medium
	}
}

// WithThresholds sets the repetition counts that force CRITICAL and HIGH.
// Default: 5 and 3.
func WithThresholds(critical, high int) Option {
	return func(o *options) {
		o.criticalThreshold = critical
		o.highThreshold = high
	}
}

// WithMode selects the summary template: "human" or "technical".
// Default: "human".
func WithMode(mode string) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithTop limits the ranked list. 0 keeps every incident.
func WithTop(n int) Option {
	return func(o *options) {
		o.top = n
	}
}

// WithWorkers splits extraction over n goroutines. Results are identical
// to a sequential run. Default: 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		location:          time.UTC,
		minTokens:         3,
		criticalThreshold: 5,
		highThreshold:     3,
		mode:              "human",
		workers:           1,
	}
}
