package source

import (
	"context"
	"io"
)

// Source opens the line stream for one batch.
type Source interface {
	// Open returns a reader over the raw batch. A failure here is a
	// resource-level error and aborts the run.
	Open(ctx context.Context, cfg Config) (io.ReadCloser, error)
}

// Config holds provider-specific settings.
type Config struct {
	Provider string
	Path     string
	Extra    map[string]string
}
