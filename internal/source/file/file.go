package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/crimson-sun/logtriage/internal/source"
)

func init() {
	source.Register("file", func() source.Source {
		return &Source{}
	})
}

// Source reads a batch from a local file. Files ending in .gz or .zst are
// decompressed transparently.
type Source struct{}

// Open opens cfg.Path.
func (s *Source) Open(_ context.Context, cfg source.Config) (io.ReadCloser, error) {
	if cfg.Path == "" {
		return nil, errors.New("file source: path is required")
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: open %s: %w", cfg.Path, err)
	}
	rc, err := source.Decompress(filepath.ToSlash(cfg.Path), f)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	return rc, nil
}
