package logtriage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/crimson-sun/logtriage/internal/engine"
	"github.com/crimson-sun/logtriage/internal/engine/incident"
	"github.com/crimson-sun/logtriage/internal/engine/severity"
	"github.com/crimson-sun/logtriage/internal/model"
	"github.com/crimson-sun/logtriage/internal/source"
)

// ErrInvalidOption is returned by New for out-of-range settings.
var ErrInvalidOption = errors.New("logtriage: invalid option")

// Analyzer analyzes log batches. Safe for concurrent use.
type Analyzer struct {
	engine *engine.Engine
}

// New creates an Analyzer.
func New(opts ...Option) (*Analyzer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.highThreshold < 1 || o.criticalThreshold < o.highThreshold {
		return nil, fmt.Errorf("%w: thresholds must satisfy 1 <= high (%d) <= critical (%d)",
			ErrInvalidOption, o.highThreshold, o.criticalThreshold)
	}
	if o.minTokens < 0 {
		return nil, fmt.Errorf("%w: min tokens %d", ErrInvalidOption, o.minTokens)
	}
	if o.top < 0 {
		return nil, fmt.Errorf("%w: top %d", ErrInvalidOption, o.top)
	}
	mode := model.ParseSummaryMode(o.mode)
	if string(mode) != o.mode {
		return nil, fmt.Errorf("%w: mode %q", ErrInvalidOption, o.mode)
	}

	var rules severity.Rules
	if len(o.highKeywords) > 0 || len(o.mediumKeywords) > 0 {
		rules = severity.Rules{High: o.highKeywords, Medium: o.mediumKeywords}
	}

	eng := engine.New(engine.Options{
		Location:    o.location,
		MinTokens:   o.minTokens,
		Rules:       rules,
		Thresholds:  severity.Thresholds{Critical: o.criticalThreshold, High: o.highThreshold},
		Aggregation: incident.Config{Mode: mode, Top: o.top},
		Workers:     o.workers,
		Logger:      o.logger,
	})
	return &Analyzer{engine: eng}, nil
}

// AnalyzeLines analyzes an in-memory batch. Lines that are not records
// are skipped and counted in Report.LinesDropped.
func (a *Analyzer) AnalyzeLines(ctx context.Context, lines []string) (Report, error) {
	r, err := a.engine.Analyze(ctx, lines)
	if err != nil {
		return Report{}, err
	}
	return reportFromModel(r), nil
}

// Analyze reads r to the end and analyzes it as one batch. Input is
// decoded best-effort: invalid UTF-8 is dropped and a UTF-16 BOM is
// honoured.
func (a *Analyzer) Analyze(ctx context.Context, r io.Reader) (Report, error) {
	lines, err := source.ReadLines(ctx, r)
	if err != nil {
		return Report{}, fmt.Errorf("logtriage: %w", err)
	}
	return a.AnalyzeLines(ctx, lines)
}

// ParseLine parses and normalizes a single line without classifying it:
// severity depends on the whole batch, so Record.Severity is empty.
func (a *Analyzer) ParseLine(line string) (Record, bool) {
	rec, ok := a.engine.ProcessLine(line)
	if !ok {
		return Record{}, false
	}
	return recordFromModel(rec), true
}
