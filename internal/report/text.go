// internal/report/text.go
package report

import (
	"fmt"
	"io"

	"github.com/tamzrod/zestlink/internal/status"
	"github.com/tamzrod/zestlink/internal/transfer"
)

// textReporter prints one block per cycle:
//
//	Sent in:        2.2,       1.1, got out:          5
//	Magnitude: 2.204437255859375
type textReporter struct {
	w      io.Writer
	closer io.Closer
	runID  string
}

func (r *textReporter) Report(res transfer.CycleResult) error {
	if res.Err != nil {
		_, err := fmt.Fprintf(r.w, "Sent in: %10g,%10g, failed: %v\n\n", res.InX, res.InY, res.Err)
		return err
	}
	_, err := fmt.Fprintf(r.w,
		"Sent in: %10g,%10g, got out: %10d\nMagnitude: %g\n\n",
		res.InX, res.InY, res.Result.Output, res.Result.Magnitude,
	)
	return err
}

func (r *textReporter) Summary(s status.Snapshot) error {
	_, err := fmt.Fprintf(r.w,
		"run %s: cycles=%d failures=%d health=%s last_error=%d\n",
		r.runID, s.Cycles, s.Failures, status.HealthName(s.Health), s.LastErrorCode,
	)
	return err
}

func (r *textReporter) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
