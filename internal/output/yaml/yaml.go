package yaml

import (
	"context"
	"fmt"
	"io"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/crimson-sun/logtriage/internal/engine/compactor"
	"github.com/crimson-sun/logtriage/internal/model"
	"github.com/crimson-sun/logtriage/internal/output"
)

// Output writes reports as YAML documents, separated by "---" when more
// than one report is written.
type Output struct {
	enc       *yamlv3.Encoder
	verbosity compactor.Verbosity
}

// New creates a YAML Output writing to stdout.
func New(verbosity compactor.Verbosity) *Output {
	return NewWriter(os.Stdout, verbosity)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, verbosity compactor.Verbosity) *Output {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	return &Output{enc: enc, verbosity: verbosity}
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	if err := o.enc.Encode(output.FormatReport(report, o.verbosity)); err != nil {
		return fmt.Errorf("yaml output: %w", err)
	}
	return nil
}

// Close flushes the encoder.
func (o *Output) Close() error {
	if err := o.enc.Close(); err != nil {
		return fmt.Errorf("yaml output: %w", err)
	}
	return nil
}
