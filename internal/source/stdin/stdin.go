package stdin

import (
	"context"
	"io"
	"os"

	"github.com/crimson-sun/logtriage/internal/source"
)

func init() {
	source.Register("stdin", func() source.Source {
		return New(os.Stdin)
	})
}

// Source reads a batch from standard input or any injected reader.
type Source struct {
	r io.Reader
}

// New creates a Source over r.
func New(r io.Reader) *Source {
	return &Source{r: r}
}

// Open returns the reader. Closing it does not close the underlying stream.
func (s *Source) Open(_ context.Context, _ source.Config) (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}
