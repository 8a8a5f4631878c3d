// Package logtriage turns a batch of raw log lines into an incident
// report: each line is parsed into a record, its message is normalized
// into an incident signature, identical signatures are grouped, and every
// record is classified by keyword and by how often its incident repeats.
//
// Quick start:
//
//	a, err := logtriage.New(logtriage.WithMode("technical"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := os.Open("CBS.log")
//	defer f.Close()
//
//	report, err := a.Analyze(ctx, f)
//	fmt.Println(report.Executive)
//	for _, inc := range report.Ranked {
//	    fmt.Println(inc.Frequency, inc.Service, inc.Message)
//	}
//
// An Analyzer is immutable once built and safe for concurrent use.
package logtriage
