// internal/transfer/cycle.go
package transfer

import (
	"errors"
	"time"

	"github.com/tamzrod/zestlink/internal/channel"
	"github.com/tamzrod/zestlink/internal/fixedpoint"
)

// CycleConfig is the immutable config of a Cycle.
type CycleConfig struct {
	Layout Layout
	Settle time.Duration

	// RejectOverflow turns out-of-range inputs into ErrEncodingOverflow.
	// When false, inputs wrap exactly like an unchecked fixed-point cast.
	RejectOverflow bool

	// Waiter defaults to SleepWaiter.
	Waiter Waiter

	// OnState, if set, is called on every state transition.
	OnState func(State)
}

// Cycle runs one encode/transmit/settle/read/decode round against a channel.
// A Cycle borrows its channel and is not safe for concurrent use.
type Cycle struct {
	cfg   CycleConfig
	ch    channel.RegisterChannel
	state State
}

// NewCycle creates a cycle with immutable config.
func NewCycle(cfg CycleConfig, ch channel.RegisterChannel) (*Cycle, error) {
	if ch == nil {
		return nil, errors.New("transfer: channel required")
	}
	if cfg.Settle < 0 {
		return nil, errors.New("transfer: settle must be >= 0")
	}
	if cfg.Layout.XAddr == cfg.Layout.YAddr {
		return nil, errors.New("transfer: x and y must use different registers")
	}
	if cfg.Layout.OutputBytes < 1 || cfg.Layout.OutputBytes > 4 ||
		cfg.Layout.MagnitudeBytes < 1 || cfg.Layout.MagnitudeBytes > 4 {
		return nil, ErrByteCount
	}
	if cfg.Waiter == nil {
		cfg.Waiter = SleepWaiter
	}
	return &Cycle{cfg: cfg, ch: ch}, nil
}

// State returns the current protocol stage; StateIdle between runs.
func (c *Cycle) State() State {
	return c.state
}

// Run performs exactly one cycle.
// All-or-nothing: any failure aborts the remaining stages and returns a *CycleError.
// There is no retry; the caller decides whether to run another cycle.
func (c *Cycle) Run(x, y float64) (res Result, err error) {
	defer c.enter(StateIdle)

	// ---- encoding ----
	c.enter(StateEncoding)

	if res.X, err = c.encode(x); err != nil {
		return Result{}, &CycleError{Stage: StateEncoding, Err: err}
	}
	if res.Y, err = c.encode(y); err != nil {
		return Result{}, &CycleError{Stage: StateEncoding, Err: err}
	}

	// ---- transmitting: X strictly before Y ----
	c.enter(StateTransmitting)

	if err := Transmit(c.ch, res.X, c.cfg.Layout.XAddr); err != nil {
		return Result{}, &CycleError{Stage: StateTransmitting, Err: err}
	}
	if err := Transmit(c.ch, res.Y, c.cfg.Layout.YAddr); err != nil {
		return Result{}, &CycleError{Stage: StateTransmitting, Err: err}
	}

	// ---- settling ----
	c.enter(StateSettling)
	c.cfg.Waiter.Wait(c.cfg.Settle)

	// ---- reading ----
	c.enter(StateReading)

	if res.Output, err = Receive(c.ch, c.cfg.Layout.OutputAddr, c.cfg.Layout.OutputBytes); err != nil {
		return Result{}, &CycleError{Stage: StateReading, Err: err}
	}
	if res.RawMagnitude, err = Receive(c.ch, c.cfg.Layout.MagnitudeAddr, c.cfg.Layout.MagnitudeBytes); err != nil {
		return Result{}, &CycleError{Stage: StateReading, Err: err}
	}

	// ---- decoding ----
	c.enter(StateDecoding)
	res.Magnitude = fixedpoint.Decode(fixedpoint.FromBits(res.RawMagnitude))

	return res, nil
}

func (c *Cycle) encode(v float64) (fixedpoint.Value, error) {
	if c.cfg.RejectOverflow {
		return fixedpoint.EncodeChecked(v)
	}
	return fixedpoint.Encode(v), nil
}

func (c *Cycle) enter(s State) {
	c.state = s
	if c.cfg.OnState != nil {
		c.cfg.OnState(s)
	}
}
