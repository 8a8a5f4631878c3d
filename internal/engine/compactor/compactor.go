package compactor

import (
	"strings"
	"unicode/utf8"
)

// Verbosity controls how much per-record detail is retained in output.
type Verbosity int

const (
	Minimal  Verbosity = iota // incidents and summaries only, no records
	Standard                  // records with raw messages capped
	Full                      // everything
)

// PreviewLen is the display bound for incident message previews.
const PreviewLen = 120

const standardRawLen = 2000

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
// Unknown strings yield Standard.
func ParseVerbosity(s string) Verbosity {
	switch strings.ToLower(s) {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// Compactor trims record text according to verbosity.
type Compactor struct {
	Verbosity Verbosity
}

// New creates a Compactor with the given verbosity level.
func New(v Verbosity) *Compactor {
	return &Compactor{Verbosity: v}
}

// Compact returns raw shortened for the configured verbosity.
// Minimal drops the text entirely.
func (c *Compactor) Compact(raw string) string {
	switch c.Verbosity {
	case Minimal:
		return ""
	case Standard:
		return truncate(raw, standardRawLen)
	default:
		return raw
	}
}

// Preview cuts s to at most maxRunes runes without any marker, so the
// result never exceeds the bound. Cutting is rune-safe.
func Preview(s string, maxRunes int) string {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i := 0
	for pos := range s {
		if i == maxRunes {
			return s[:pos]
		}
		i++
	}
	return s
}

// truncate cuts s to maxRunes runes and appends "..." when anything was cut.
func truncate(s string, maxRunes int) string {
	cut := Preview(s, maxRunes)
	if len(cut) == len(s) {
		return s
	}
	return cut + "..."
}
