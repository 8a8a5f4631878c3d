// Package table renders reports for a terminal: the executive summary,
// batch statistics, the ranked incident table and repeated-incident
// summaries.
package table

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/crimson-sun/logtriage/internal/engine/compactor"
	"github.com/crimson-sun/logtriage/internal/engine/incident"
	"github.com/crimson-sun/logtriage/internal/model"
)

// Option configures a table Output.
type Option func(*Output)

// WithColor forces ANSI colors on or off. By default colors follow
// whether stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(o *Output) { o.colored = &enabled }
}

// Output renders reports as human-readable tables.
type Output struct {
	w         io.Writer
	verbosity compactor.Verbosity
	colored   *bool

	heading  *color.Color
	severity map[model.Severity]*color.Color
}

// New creates a table Output writing to stdout.
func New(verbosity compactor.Verbosity, opts ...Option) *Output {
	return NewWriter(os.Stdout, verbosity, opts...)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, verbosity compactor.Verbosity, opts ...Option) *Output {
	o := &Output{
		w:         w,
		verbosity: verbosity,
		heading:   color.New(color.FgWhite, color.Bold),
		severity: map[model.Severity]*color.Color{
			model.SeverityCritical: color.New(color.FgRed, color.Bold),
			model.SeverityHigh:     color.New(color.FgRed),
			model.SeverityMedium:   color.New(color.FgYellow),
			model.SeverityLow:      color.New(color.FgCyan),
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.colored != nil {
		for _, c := range o.allColors() {
			if *o.colored {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
	return o
}

func (o *Output) allColors() []*color.Color {
	cs := []*color.Color{o.heading}
	for _, c := range o.severity {
		cs = append(cs, c)
	}
	return cs
}

func (o *Output) colorFor(s model.Severity) *color.Color {
	if c, ok := o.severity[s]; ok {
		return c
	}
	return o.heading
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	if err := o.render(report); err != nil {
		return fmt.Errorf("table output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}

func (o *Output) render(r model.Report) error {
	o.heading.Fprintln(o.w, "Executive summary")
	fmt.Fprintf(o.w, "  %s\n\n", r.Executive)

	o.heading.Fprintln(o.w, "Batch")
	fmt.Fprintf(o.w, "  Lines read     : %s (%s dropped)\n",
		humanize.Comma(int64(r.LinesRead)), humanize.Comma(int64(r.LinesDropped)))
	fmt.Fprintf(o.w, "  Records        : %s across %d services\n",
		humanize.Comma(int64(r.Stats.Records)), len(r.Stats.ByService))
	fmt.Fprintf(o.w, "  Incident types : %d (%d repeated)\n", r.Stats.IncidentTypes, r.Stats.RepeatedIncidents)
	fmt.Fprintf(o.w, "  Per minute     : mean %s, stddev %s over %d active minutes\n",
		humanize.FtoaWithDigits(r.Stats.PerMinuteMean, 2),
		humanize.FtoaWithDigits(r.Stats.PerMinuteStdDev, 2),
		r.Stats.ActiveMinutes)
	fmt.Fprint(o.w, "  Severity       :")
	for i := len(model.Severities) - 1; i >= 0; i-- {
		sev := model.Severities[i]
		fmt.Fprint(o.w, " ")
		o.colorFor(sev).Fprintf(o.w, "%s=%d", sev, r.Stats.BySeverity[sev])
	}
	fmt.Fprint(o.w, "\n\n")

	o.heading.Fprintln(o.w, "Top incidents")
	if len(r.Ranked) == 0 {
		fmt.Fprint(o.w, "  none\n\n")
	} else {
		tw := tablewriter.NewWriter(o.w)
		tw.SetHeader([]string{"#", "Service", "Count", "Last seen", "Message"})
		tw.SetAutoWrapText(false)
		tw.SetAlignment(tablewriter.ALIGN_LEFT)
		for i, inc := range r.Ranked {
			tw.Append([]string{
				strconv.Itoa(i + 1),
				inc.Service,
				humanize.Comma(int64(inc.Frequency)),
				inc.LastSeen.Format(incident.TimeLayout),
				inc.Message,
			})
		}
		tw.Render()
		fmt.Fprintln(o.w)
	}

	o.heading.Fprintln(o.w, "Repeated incidents")
	if len(r.Summaries) == 0 {
		fmt.Fprintln(o.w, "  none")
	}
	for _, s := range r.Summaries {
		fmt.Fprintf(o.w, "  - %s\n", s.Text)
	}

	if o.verbosity == compactor.Full && len(r.Records) > 0 {
		fmt.Fprintln(o.w)
		o.heading.Fprintln(o.w, "Records")
		for _, rec := range r.Records {
			fmt.Fprintf(o.w, "  %s ", rec.Timestamp.Format(incident.TimeLayout))
			o.colorFor(rec.Severity).Fprintf(o.w, "%-8s", rec.Severity)
			fmt.Fprintf(o.w, " %s: %s\n", rec.Service, rec.RawMessage)
		}
	}
	return nil
}
