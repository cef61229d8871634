// internal/report/cbor.go
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/tamzrod/zestlink/internal/status"
	"github.com/tamzrod/zestlink/internal/transfer"
)

// encMode is deterministic with nanosecond timestamps.
var encMode cbor.EncMode

// decMode reads record streams back.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("report: cbor encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("report: cbor decoder mode: %v", err))
	}
}

// cborReporter writes a stream of concatenated CBOR Records.
type cborReporter struct {
	bw     *bufio.Writer
	enc    *cbor.Encoder
	closer io.Closer
	runID  string
}

func newCBORReporter(w io.Writer, closer io.Closer, runID string) *cborReporter {
	bw := bufio.NewWriter(w)
	return &cborReporter{
		bw:     bw,
		enc:    encMode.NewEncoder(bw),
		closer: closer,
		runID:  runID,
	}
}

func (r *cborReporter) Report(res transfer.CycleResult) error {
	if err := r.enc.Encode(NewRecord(r.runID, res)); err != nil {
		return fmt.Errorf("report: cbor encode: %w", err)
	}
	return nil
}

func (r *cborReporter) Summary(s status.Snapshot) error {
	rec := Record{
		RunID:  r.runID,
		Index:  -1,
		Health: s.Health,
		Summary: &SummaryRecord{
			Cycles:              s.Cycles,
			Failures:            s.Failures,
			ConsecutiveFailures: s.ConsecutiveFailures,
			LastErrorCode:       s.LastErrorCode,
			Block:               status.Encode(s),
		},
	}
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("report: cbor encode summary: %w", err)
	}
	return nil
}

func (r *cborReporter) Close() error {
	err := r.bw.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadRecords decodes every record from a CBOR report stream.
func ReadRecords(rd io.Reader) ([]Record, error) {
	dec := decMode.NewDecoder(rd)

	var out []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, fmt.Errorf("report: cbor decode: %w", err)
		}
		out = append(out, rec)
	}
}
