package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/logtriage/internal/config"
	"github.com/crimson-sun/logtriage/internal/engine"
	"github.com/crimson-sun/logtriage/internal/engine/compactor"
	"github.com/crimson-sun/logtriage/internal/engine/incident"
	"github.com/crimson-sun/logtriage/internal/engine/severity"
	"github.com/crimson-sun/logtriage/internal/metrics"
	"github.com/crimson-sun/logtriage/internal/model"
	"github.com/crimson-sun/logtriage/internal/output"
	"github.com/crimson-sun/logtriage/internal/output/file"
	"github.com/crimson-sun/logtriage/internal/output/multi"
	"github.com/crimson-sun/logtriage/internal/output/stdout"
	"github.com/crimson-sun/logtriage/internal/output/table"
	"github.com/crimson-sun/logtriage/internal/output/yaml"
	"github.com/crimson-sun/logtriage/internal/pipeline"
	"github.com/crimson-sun/logtriage/internal/source"
	"github.com/crimson-sun/logtriage/internal/source/stdin"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a log batch from a file or stdin",
		Long: `Analyze reads one batch of log lines and prints a report.

With no file, or with "-", lines are read from stdin. An http(s) URL is
downloaded as one batch. Files and URLs ending in .gz or .zst are
decompressed on the fly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runAnalyze(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), args)
		},
	}

	f := cmd.Flags()
	f.String("format", "json", "report format: json, yaml, table")
	f.String("mode", "human", "summary style: human or technical")
	f.String("verbosity", "standard", "record detail: minimal, standard, full")
	f.Bool("pretty", false, "indent JSON output")
	f.Int("top", 0, "keep only the N most frequent incidents (0 = all)")
	f.String("out", "", "also append the report as NDJSON to this file")
	f.Int("workers", 1, "concurrent extraction workers")
	f.String("timezone", "UTC", "zone the log timestamps are written in")
	f.Int("min-tokens", 3, "tokens a normalized message needs to be aggregated")
	f.String("metrics-file", "", "write Prometheus metrics to this textfile")

	for flag, key := range map[string]string{
		"format":       "output.format",
		"mode":         "output.mode",
		"verbosity":    "output.verbosity",
		"pretty":       "output.pretty",
		"top":          "output.top",
		"out":          "output.path",
		"workers":      "engine.workers",
		"timezone":     "engine.timezone",
		"min-tokens":   "engine.min_tokens",
		"metrics-file": "metrics.file",
	} {
		a.bind(cmd, flag, key)
	}
	return cmd
}

func (a *app) runAnalyze(ctx context.Context, in io.Reader, w io.Writer, args []string) error {
	cfg := a.cfg

	loc, err := time.LoadLocation(cfg.Engine.Timezone)
	if err != nil {
		return fmt.Errorf("engine.timezone: %w", err)
	}

	src, srcCfg, err := resolveSource(cfg.Source, in, args)
	if err != nil {
		return err
	}

	eng := engine.New(engineOptions(cfg, loc, a.logger))

	out, err := buildOutput(cfg.Output, w)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{pipeline.WithLogger(a.logger)}
	var m *metrics.Metrics
	if cfg.Metrics.File != "" {
		m = metrics.New()
		opts = append(opts, pipeline.WithMetrics(m))
	}

	p := pipeline.New(src, eng, out, opts...)
	_, runErr := p.Run(ctx, srcCfg)
	closeErr := p.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	if m != nil {
		if err := m.WriteTextfile(cfg.Metrics.File); err != nil {
			return err
		}
		a.logger.Debug("metrics written", zap.String("path", cfg.Metrics.File))
	}
	return nil
}

func resolveSource(sc config.SourceConfig, in io.Reader, args []string) (source.Source, source.Config, error) {
	path := sc.Path
	provider := sc.Provider
	if len(args) == 1 {
		path, provider = args[0], "file"
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			provider = "http"
		}
	}
	if path == "" || path == "-" || provider == "stdin" {
		return stdin.New(in), source.Config{Provider: "stdin"}, nil
	}

	ctor, err := source.Get(provider)
	if err != nil {
		return nil, source.Config{}, err
	}
	cfg := source.Config{Provider: provider, Path: path}
	if sc.Token != "" {
		cfg.Extra = map[string]string{"token": sc.Token}
	}
	return ctor(), cfg, nil
}

func engineOptions(cfg *config.Config, loc *time.Location, logger *zap.Logger) engine.Options {
	opts := engine.Options{
		Location:  loc,
		MinTokens: cfg.Engine.MinTokens,
		Thresholds: severity.Thresholds{
			Critical: cfg.Engine.CriticalThreshold,
			High:     cfg.Engine.HighThreshold,
		},
		Aggregation: incident.Config{
			Mode: model.ParseSummaryMode(cfg.Output.Mode),
			Top:  cfg.Output.Top,
		},
		Workers: cfg.Engine.Workers,
		Logger:  logger,
	}
	if len(cfg.Engine.HighKeywords) > 0 || len(cfg.Engine.MediumKeywords) > 0 {
		opts.Rules = severity.Rules{High: cfg.Engine.HighKeywords, Medium: cfg.Engine.MediumKeywords}
	}
	return opts
}

func buildOutput(oc config.OutputConfig, w io.Writer) (output.Output, error) {
	verbosity := compactor.ParseVerbosity(oc.Verbosity)

	var primary output.Output
	switch oc.Format {
	case "yaml":
		primary = yaml.NewWriter(w, verbosity)
	case "table":
		primary = table.NewWriter(w, verbosity)
	default:
		primary = stdout.NewWriter(w, verbosity, oc.Pretty)
	}
	if oc.Path == "" {
		return primary, nil
	}

	copyOut, err := file.New(oc.Path, verbosity)
	if err != nil {
		return nil, err
	}
	return multi.New(primary, copyOut), nil
}
