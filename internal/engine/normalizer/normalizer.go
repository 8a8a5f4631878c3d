// Package normalizer reduces raw log messages to a canonical form suitable
// for grouping and keyword classification.
package normalizer

import (
	"regexp"
	"strings"
)

// DefaultMinTokens is the fewest tokens a normalized message may keep.
const DefaultMinTokens = 3

// Removal steps, applied in order after lowercasing. Each match is replaced
// by a single space so neighbouring words never fuse.
var steps = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ t]\d{2}:\d{2}:\d{2}(?:,\d+)?`), // 2016-09-29 00:01:47,123
	regexp.MustCompile(`\d{4}/\d{1,2}/\d{1,2}`),                          // 2016/9/29
	regexp.MustCompile(`0x[0-9a-f]+`),                                    // hex literals, addresses
	regexp.MustCompile(`[a-z]:\\[^ ]+`),                                  // c:\windows\servicing\...
	regexp.MustCompile(`\d+(?:\.\d+)*`),                                  // numbers, dotted versions
	regexp.MustCompile(`[^a-z\s]`),                                       // everything but letters and space
}

// Normalizer converts raw message text into canonical text.
type Normalizer struct {
	minTokens int
}

// New creates a Normalizer. minTokens <= 0 selects DefaultMinTokens.
func New(minTokens int) *Normalizer {
	if minTokens <= 0 {
		minTokens = DefaultMinTokens
	}
	return &Normalizer{minTokens: minTokens}
}

// Normalize returns the canonical form of raw, or "" when fewer than the
// configured number of tokens survive. The same input always yields the
// same output, and already-normalized text passes through unchanged.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ToLower(raw)
	for _, re := range steps {
		text = re.ReplaceAllLiteralString(text, " ")
	}

	tokens := strings.Fields(text)
	if len(tokens) < n.minTokens {
		return ""
	}
	return strings.Join(tokens, " ")
}
