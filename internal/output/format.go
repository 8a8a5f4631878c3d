package output

import (
	"github.com/crimson-sun/logtriage/internal/engine/compactor"
	"github.com/crimson-sun/logtriage/internal/model"
)

// FormatReport returns a copy of the report shaped for the given verbosity.
// At Minimal the per-record listing is dropped. At Standard each raw
// message is capped; at Full records are passed through untouched.
// The caller's Records slice is never modified.
func FormatReport(r model.Report, verbosity compactor.Verbosity) model.Report {
	if verbosity == compactor.Minimal {
		r.Records = nil
		return r
	}
	if verbosity == compactor.Full || len(r.Records) == 0 {
		return r
	}

	c := compactor.New(verbosity)
	records := make([]model.LogRecord, len(r.Records))
	for i, rec := range r.Records {
		rec.RawMessage = c.Compact(rec.RawMessage)
		records[i] = rec
	}
	r.Records = records
	return r
}
