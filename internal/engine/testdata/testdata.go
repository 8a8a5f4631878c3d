// Package testdata embeds sample log corpora shared by tests.
package testdata

import (
	_ "embed"
	"strings"
)

//go:embed cbs_sample.log
var cbsSample string

// CBSSample returns the lines of a small Windows servicing log mixing
// repeated failures, warnings, low-content lines and malformed input.
//
// Shape of the sample: 19 lines, 15 records (4 lines are malformed or
// carry an impossible date), 7 incident types over 3 services. The
// "failed to get next element hresult" incident repeats 5 times, the
// unrecognized attribute warning 3 times and the session line twice.
func CBSSample() []string {
	return strings.Split(strings.TrimSuffix(cbsSample, "\n"), "\n")
}

// CBSSampleText returns the raw sample text.
func CBSSampleText() string {
	return cbsSample
}
