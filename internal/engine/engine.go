package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/logtriage/internal/engine/extractor"
	"github.com/crimson-sun/logtriage/internal/engine/incident"
	"github.com/crimson-sun/logtriage/internal/engine/normalizer"
	"github.com/crimson-sun/logtriage/internal/engine/severity"
	"github.com/crimson-sun/logtriage/internal/engine/stats"
	"github.com/crimson-sun/logtriage/internal/engine/summary"
	"github.com/crimson-sun/logtriage/internal/model"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Location    *time.Location // timestamp zone, default UTC
	MinTokens   int            // normalizer token floor, default 3
	Rules       severity.Rules
	Thresholds  severity.Thresholds
	Aggregation incident.Config
	Workers     int // concurrent extraction ranges, <=1 runs sequentially
	Logger      *zap.Logger
}

// Engine orchestrates the extract → normalize → index → classify →
// aggregate pipeline over one batch of lines.
type Engine struct {
	extractor  *extractor.Extractor
	normalizer *normalizer.Normalizer
	classifier *severity.Classifier
	aggregator *incident.Aggregator
	workers    int
	logger     *zap.Logger
	now        func() time.Time
}

// New creates an Engine with the provided options.
func New(opts Options) *Engine {
	rules := opts.Rules
	if len(rules.High) == 0 && len(rules.Medium) == 0 {
		rules = severity.DefaultRules()
	}
	thresholds := opts.Thresholds
	if thresholds == (severity.Thresholds{}) {
		thresholds = severity.DefaultThresholds()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		extractor:  extractor.New(opts.Location),
		normalizer: normalizer.New(opts.MinTokens),
		classifier: severity.New(rules, thresholds),
		aggregator: incident.New(opts.Aggregation),
		workers:    opts.Workers,
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessLine extracts and normalizes a single line. ok is false when the
// line is not a record. Severity is left unset: it depends on the whole
// batch.
func (e *Engine) ProcessLine(line string) (model.LogRecord, bool) {
	rec, ok := e.extractor.Extract(line)
	if !ok {
		return model.LogRecord{}, false
	}
	rec.CleanMessage = e.normalizer.Normalize(rec.RawMessage)
	return rec, true
}

// Analyze runs the full two-pass analysis. The first pass extracts every
// record and builds the incident index; only once the index is complete
// does the second pass classify records against it. The only error
// returned is a cancelled context.
func (e *Engine) Analyze(ctx context.Context, lines []string) (model.Report, error) {
	records, index, err := e.extract(ctx, lines)
	if err != nil {
		return model.Report{}, err
	}

	for i := range records {
		r := &records[i]
		count := 0
		if r.Aggregatable() {
			count = index.Count(r.Key())
		}
		r.Severity = e.classifier.Classify(r.CleanMessage, count)
	}

	report := model.Report{
		RunID:        uuid.NewString(),
		GeneratedAt:  e.now().UTC(),
		LinesRead:    len(lines),
		LinesDropped: len(lines) - len(records),
		Executive:    summary.Executive(records),
		Ranked:       e.aggregator.Rank(index),
		Summaries:    e.aggregator.Summaries(index),
		Stats:        stats.Compute(records),
		Records:      records,
	}

	e.logger.Info("batch analyzed",
		zap.String("run_id", report.RunID),
		zap.Int("lines", report.LinesRead),
		zap.Int("records", len(records)),
		zap.Int("dropped", report.LinesDropped),
		zap.Int("incident_types", index.Len()),
		zap.Int("repeated", len(report.Summaries)),
	)
	return report, nil
}

// chunk is one contiguous line range processed by a single worker.
type chunk struct {
	offset  int
	end     int
	records []model.LogRecord
	builder *incident.Builder
}

// extract runs the first pass. With more than one worker the lines are
// split into contiguous ranges; the partial indexes are merged in range
// order so the result is identical to a sequential pass.
func (e *Engine) extract(ctx context.Context, lines []string) ([]model.LogRecord, *incident.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	chunks := split(len(lines), e.workers)

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.extractRange(lines[c.offset:c.end], c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var records []model.LogRecord
	merged := incident.NewBuilder()
	for _, c := range chunks {
		records = append(records, c.records...)
		merged.Merge(c.builder)
	}
	if records == nil {
		records = []model.LogRecord{}
	}
	return records, merged.Build(), nil
}

func (e *Engine) extractRange(lines []string, c *chunk) {
	for i, line := range lines {
		rec, ok := e.ProcessLine(line)
		if !ok {
			e.logger.Debug("line skipped", zap.Int("line", c.offset+i+1))
			continue
		}
		rec.Line = c.offset + i + 1
		c.records = append(c.records, rec)
		c.builder.Add(rec)
	}
}

// split divides n lines into at most workers contiguous ranges.
func split(n, workers int) []*chunk {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return nil
	}

	size := (n + workers - 1) / workers
	var chunks []*chunk
	for off := 0; off < n; off += size {
		end := min(off+size, n)
		chunks = append(chunks, &chunk{
			offset:  off,
			end:     end,
			records: make([]model.LogRecord, 0, end-off),
			builder: incident.NewBuilder(),
		})
	}
	return chunks
}
