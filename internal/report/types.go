// internal/report/types.go
package report

import (
	"time"

	"github.com/tamzrod/zestlink/internal/status"
	"github.com/tamzrod/zestlink/internal/transfer"
)

// Reporter delivers cycle results to one sink.
// It receives results and writes them verbatim; no retry, no state beyond the stream.
type Reporter interface {
	Report(res transfer.CycleResult) error
	Summary(s status.Snapshot) error
	Close() error
}

// Record is one cycle as stored in the CBOR stream.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	RunID     string    `cbor:"1,keyasint"`
	Index     int       `cbor:"2,keyasint"`
	Timestamp time.Time `cbor:"3,keyasint"`

	InX float64 `cbor:"4,keyasint"`
	InY float64 `cbor:"5,keyasint"`

	FixedX int32 `cbor:"6,keyasint,omitempty"`
	FixedY int32 `cbor:"7,keyasint,omitempty"`

	Output       uint32  `cbor:"8,keyasint"`
	RawMagnitude uint32  `cbor:"9,keyasint"`
	Magnitude    float64 `cbor:"10,keyasint"`

	Error     string `cbor:"11,keyasint,omitempty"`
	ErrorCode uint16 `cbor:"12,keyasint,omitempty"`
	Health    uint16 `cbor:"13,keyasint"`

	// Summary is set only on the final record of a run.
	Summary *SummaryRecord `cbor:"14,keyasint,omitempty"`
}

// SummaryRecord is the run status at close.
type SummaryRecord struct {
	Cycles              uint32 `cbor:"1,keyasint"`
	Failures            uint32 `cbor:"2,keyasint"`
	ConsecutiveFailures uint16 `cbor:"3,keyasint"`
	LastErrorCode       uint16 `cbor:"4,keyasint"`

	// Block is status.Encode of the final snapshot.
	Block []uint16 `cbor:"5,keyasint"`
}

// NewRecord converts a cycle result.
func NewRecord(runID string, res transfer.CycleResult) Record {
	r := Record{
		RunID:        runID,
		Index:        res.Index,
		Timestamp:    res.At,
		InX:          res.InX,
		InY:          res.InY,
		FixedX:       int32(res.Result.X),
		FixedY:       int32(res.Result.Y),
		Output:       res.Result.Output,
		RawMagnitude: res.Result.RawMagnitude,
		Magnitude:    res.Result.Magnitude,
		Health:       res.Status.Health,
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
		r.ErrorCode = status.ErrorCode(res.Err)
	}
	return r
}
