package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/crimson-sun/logtriage/internal/model"
)

// TimestampLayout is the layout of the leading date-time token.
const TimestampLayout = "2006-01-02 15:04:05"

// linePattern matches "<date time>, <level> <component> <message>".
// Components may carry dots and hyphens (auth-service, Microsoft.Windows).
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}),\s*(\w+)\s+([\w.-]+)\s+(.*)$`)

// Extractor turns raw lines into structured records.
type Extractor struct {
	loc *time.Location
}

// New creates an Extractor that interprets timestamps in loc.
// A nil loc means UTC.
func New(loc *time.Location) *Extractor {
	if loc == nil {
		loc = time.UTC
	}
	return &Extractor{loc: loc}
}

// Extract parses a single line. ok is false when the line does not have the
// expected shape or its timestamp is not a valid point in time; such lines
// are meant to be skipped, not reported.
func (e *Extractor) Extract(line string) (rec model.LogRecord, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.LogRecord{}, false
	}

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return model.LogRecord{}, false
	}

	ts, err := time.ParseInLocation(TimestampLayout, m[1], e.loc)
	if err != nil {
		return model.LogRecord{}, false
	}

	return model.LogRecord{
		Timestamp:  ts,
		Level:      m[2],
		Service:    m[3],
		RawMessage: m[4],
	}, true
}
