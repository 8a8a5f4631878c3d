package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/crimson-sun/logtriage/internal/metrics"
	"github.com/crimson-sun/logtriage/internal/model"
	"github.com/crimson-sun/logtriage/internal/output"
	"github.com/crimson-sun/logtriage/internal/source"
)

// Analyzer turns a batch of lines into a report. Satisfied by *engine.Engine.
type Analyzer interface {
	Analyze(ctx context.Context, lines []string) (model.Report, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics feeds every report into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline connects a source, engine, and output into one batch run.
type Pipeline struct {
	source  source.Source
	engine  Analyzer
	output  output.Output
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a Pipeline from the given components.
func New(src source.Source, eng Analyzer, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		source: src,
		engine: eng,
		output: out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads the whole batch from the source, analyzes it, and writes the
// report to the output. The report is returned even when the output
// write fails.
func (p *Pipeline) Run(ctx context.Context, cfg source.Config) (model.Report, error) {
	rc, err := p.source.Open(ctx, cfg)
	if err != nil {
		return model.Report{}, fmt.Errorf("pipeline open: %w", err)
	}
	lines, err := source.ReadLines(ctx, rc)
	rc.Close()
	if err != nil {
		return model.Report{}, fmt.Errorf("pipeline read: %w", err)
	}
	p.logger.Debug("batch read",
		zap.String("provider", cfg.Provider),
		zap.String("path", cfg.Path),
		zap.Int("lines", len(lines)),
	)

	start := time.Now()
	report, err := p.engine.Analyze(ctx, lines)
	if err != nil {
		return model.Report{}, fmt.Errorf("pipeline analyze: %w", err)
	}
	took := time.Since(start)
	if p.metrics != nil {
		p.metrics.Observe(report, took)
	}

	if err := p.output.Write(ctx, report); err != nil {
		return report, fmt.Errorf("pipeline output: %w", err)
	}
	p.logger.Info("report written",
		zap.String("run_id", report.RunID),
		zap.Duration("took", took),
	)
	return report, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
