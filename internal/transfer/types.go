// internal/transfer/types.go
package transfer

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/zestlink/internal/channel"
	"github.com/tamzrod/zestlink/internal/fixedpoint"
	"github.com/tamzrod/zestlink/internal/status"
)

// ErrByteCount is returned by Receive for byte counts outside 1..4.
var ErrByteCount = errors.New("transfer: byte count must be 1..4")

// Layout is the resolved register map for one cycle.
type Layout struct {
	XAddr channel.Address
	YAddr channel.Address

	OutputAddr     channel.Address
	OutputBytes    int
	MagnitudeAddr  channel.Address
	MagnitudeBytes int
}

// Result is the decoded output of one cycle.
type Result struct {
	X fixedpoint.Value
	Y fixedpoint.Value

	Output       uint32
	RawMagnitude uint32
	Magnitude    float64
}

// State is the cycle's protocol stage.
type State uint8

const (
	StateIdle State = iota
	StateEncoding
	StateTransmitting
	StateSettling
	StateReading
	StateDecoding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEncoding:
		return "encoding"
	case StateTransmitting:
		return "transmitting"
	case StateSettling:
		return "settling"
	case StateReading:
		return "reading"
	case StateDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// CycleError reports the stage in which a cycle aborted.
type CycleError struct {
	Stage State
	Err   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("transfer: %s: %v", e.Stage, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }

// CycleResult is what the runner emits for one cycle.
type CycleResult struct {
	Index int
	At    time.Time

	// Inputs as supplied, before encoding.
	InX float64
	InY float64

	Result Result
	Err    error // non-nil means the cycle failed; Result is zero

	Status status.Snapshot
}
