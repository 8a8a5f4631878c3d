package severity

// Rules holds the ordered keyword lists used for base severity inference.
// High is checked before Medium; the first list with a match wins.
type Rules struct {
	High   []string
	Medium []string
}

// Thresholds holds the repetition counts that force escalation.
type Thresholds struct {
	Critical int // count >= Critical forces CRITICAL
	High     int // count >= High (and < Critical) forces HIGH
}

// DefaultRules returns the built-in keyword lists.
func DefaultRules() Rules {
	return Rules{
		High: []string{
			"failed",
			"error",
			"invalid",
			"corrupt",
			"cannot",
			"could not",
			"exception",
			"hresult", // Windows servicing failure codes
			"e_fail",
		},
		Medium: []string{
			"warning",
			"retry",
			"timeout",
			"unrecognized",
		},
	}
}

// DefaultThresholds returns the built-in escalation thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 5, High: 3}
}
