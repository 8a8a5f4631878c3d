// Package remote fetches a captured log batch over HTTP(S), e.g. an
// exported log file on an artifact server. The body is read once as a
// finite batch.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/crimson-sun/logtriage/internal/source"
)

func init() {
	source.Register("http", func() source.Source {
		return New()
	})
}

const (
	maxRetries   = 3
	maxErrorBody = 512
)

// StatusError represents a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string // Retry-After header value for 429s
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the HTTP client timeout, covering the whole download.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.httpClient.Timeout = d
	}
}

// WithBaseDelay sets the first retry delay; later retries double it.
// Default: 1s.
func WithBaseDelay(d time.Duration) Option {
	return func(s *Source) {
		s.baseDelay = d
	}
}

// Source downloads a batch with a GET request, retrying on 429 (honouring
// Retry-After) and 5xx responses.
type Source struct {
	httpClient *http.Client
	baseDelay  time.Duration
}

// New creates a Source.
func New(opts ...Option) *Source {
	s := &Source{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseDelay:  time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open fetches cfg.Path, which must be an http or https URL. A "token"
// entry in cfg.Extra is sent as a Bearer credential. URLs whose path ends
// in .gz or .zst are decompressed.
func (s *Source) Open(ctx context.Context, cfg source.Config) (io.ReadCloser, error) {
	u, err := url.Parse(cfg.Path)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("http source: invalid URL %q", cfg.Path)
	}

	body, err := s.get(ctx, u.String(), cfg.Extra["token"])
	if err != nil {
		return nil, fmt.Errorf("http source: %w", err)
	}
	rc, err := source.Decompress(u.Path, body)
	if err != nil {
		return nil, fmt.Errorf("http source: %w", err)
	}
	return rc, nil
}

func (s *Source) get(ctx context.Context, rawURL, token string) (io.ReadCloser, error) {
	var lastErr *StatusError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(s.backoffDelay(attempt, lastErr))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp.Body, nil
		}

		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			statusErr.retryAfter = resp.Header.Get("Retry-After")
			lastErr = statusErr
		case resp.StatusCode >= 500:
			lastErr = statusErr
		default:
			return nil, statusErr
		}
	}
	return nil, lastErr
}

// backoffDelay returns the wait before a retry: Retry-After seconds for a
// 429 that sent one, otherwise baseDelay doubled per attempt.
func (s *Source) backoffDelay(attempt int, lastErr *StatusError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == http.StatusTooManyRequests && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return s.baseDelay << (attempt - 1)
}

// IsStatus reports whether err carries an HTTP status error with code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
