// Package summary produces the one-sentence narrative for a batch.
package summary

import (
	"fmt"

	"github.com/crimson-sun/logtriage/internal/model"
)

// NoIncidents is returned for an empty batch.
const NoIncidents = "No significant incidents detected."

const timeLayout = "2006-01-02 15:04:05"

// Executive describes the batch: its time span, how many distinct incident
// types it holds and how many services emitted them.
//
// Records without a clean message count toward the span and the services
// but never as an incident type, so a batch of only short messages reports
// zero types. Counting the empty message as a type of its own would make
// such a batch report one.
func Executive(records []model.LogRecord) string {
	if len(records) == 0 {
		return NoIncidents
	}

	services := make(map[string]struct{})
	types := make(map[string]struct{})
	first, last := records[0].Timestamp, records[0].Timestamp

	for _, r := range records {
		services[r.Service] = struct{}{}
		if r.CleanMessage != "" {
			types[r.CleanMessage] = struct{}{}
		}
		if r.Timestamp.Before(first) {
			first = r.Timestamp
		}
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}

	return fmt.Sprintf("Between %s and %s, the system recorded %d distinct incident types across %d services.",
		first.Format(timeLayout), last.Format(timeLayout), len(types), len(services))
}
