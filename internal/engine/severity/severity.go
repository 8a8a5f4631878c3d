package severity

import (
	"strings"

	"github.com/crimson-sun/logtriage/internal/model"
)

// Classifier assigns a severity to normalized message text.
type Classifier struct {
	high       []string
	medium     []string
	thresholds Thresholds
}

// New creates a Classifier. Keywords are lowercased once here; empty
// keywords are ignored since they would match every message.
func New(rules Rules, thresholds Thresholds) *Classifier {
	return &Classifier{
		high:       lowerAll(rules.High),
		medium:     lowerAll(rules.Medium),
		thresholds: thresholds,
	}
}

// Infer returns the content-derived severity of a message. Matching is
// substring containment, not whole-word, so "errors" and "terror" both
// match "error".
func (c *Classifier) Infer(clean string) model.Severity {
	msg := strings.ToLower(clean)
	if containsAny(msg, c.high) {
		return model.SeverityHigh
	}
	if containsAny(msg, c.medium) {
		return model.SeverityMedium
	}
	return model.SeverityLow
}

// Escalate returns the repetition-derived severity for an occurrence count.
// ok is false when the count is below every threshold.
func (c *Classifier) Escalate(count int) (sev model.Severity, ok bool) {
	switch {
	case c.thresholds.Critical > 0 && count >= c.thresholds.Critical:
		return model.SeverityCritical, true
	case c.thresholds.High > 0 && count >= c.thresholds.High:
		return model.SeverityHigh, true
	default:
		return "", false
	}
}

// Classify returns the final severity. Escalation overrides the base
// severity outright; it is not a max of the two.
func (c *Classifier) Classify(clean string, count int) model.Severity {
	if sev, ok := c.Escalate(count); ok {
		return sev
	}
	return c.Infer(clean)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
