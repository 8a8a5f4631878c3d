package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/logtriage/internal/generator"
)

func newGenerateCmd(_ *app) *cobra.Command {
	var (
		count     int
		seed      int64
		start     string
		malformed float64
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Write synthetic log lines to stdout",
		Example: `  logtriage generate --count 500 --seed 7 | logtriage analyze --format table`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must be >= 0, got %d", count)
			}
			ts, err := time.Parse(time.DateTime, start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}

			g := generator.New(seed, generator.WithMalformedRate(malformed))
			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, line := range g.Lines(count, ts) {
				fmt.Fprintln(w, line)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 100, "number of lines to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVar(&start, "start", "2016-09-29 00:00:00", "timestamp of the first line")
	cmd.Flags().Float64Var(&malformed, "malformed", generator.DefaultMalformedRate, "share of lines that are not records")
	return cmd
}
