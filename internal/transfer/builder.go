// internal/transfer/builder.go
package transfer

import (
	"fmt"
	"time"

	"github.com/tamzrod/zestlink/internal/channel"
	"github.com/tamzrod/zestlink/internal/channel/i2c"
	cmodbus "github.com/tamzrod/zestlink/internal/channel/modbus"
	"github.com/tamzrod/zestlink/internal/channel/sim"
	cfg "github.com/tamzrod/zestlink/internal/config"
)

// LayoutFrom resolves a register map config into absolute addresses.
// Assumes config has already passed validation.
func LayoutFrom(lo cfg.LayoutConfig) Layout {
	return Layout{
		XAddr:          channel.Address(lo.WriteBase + lo.XOffset),
		YAddr:          channel.Address(lo.WriteBase + lo.YOffset),
		OutputAddr:     channel.Address(lo.ReadBase + lo.OutputOffset),
		OutputBytes:    lo.OutputBytes,
		MagnitudeAddr:  channel.Address(lo.ReadBase + lo.MagnitudeOffset),
		MagnitudeBytes: lo.MagnitudeBytes,
	}
}

// OpenChannel opens the configured transport. The returned closer releases it.
// Assumes config has been validated and normalized.
func OpenChannel(l cfg.LinkConfig) (channel.RegisterChannel, func() error, error) {
	noop := func() error { return nil }

	var (
		ch      channel.RegisterChannel
		closeFn = noop
	)

	switch l.Transport {
	case cfg.TransportSim:
		layout := LayoutFrom(*l.Layout)
		d, err := sim.New(sim.Config{
			XAddr:         layout.XAddr,
			YAddr:         layout.YAddr,
			OutputAddr:    layout.OutputAddr,
			MagnitudeAddr: layout.MagnitudeAddr,
			Latency:       time.Duration(l.Sim.LatencyMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		ch = d

	case cfg.TransportModbusTCP:
		c, err := cmodbus.NewTCP(cmodbus.TCPConfig{
			Endpoint: l.Modbus.Endpoint,
			UnitID:   l.Modbus.UnitID,
			Timeout:  time.Duration(l.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		ch, closeFn = c, c.Close

	case cfg.TransportModbusRTU:
		s := l.Serial
		c, err := cmodbus.NewRTU(cmodbus.RTUConfig{
			Device:   s.Device,
			BaudRate: s.BaudRate,
			DataBits: s.DataBits,
			Parity:   s.Parity,
			StopBits: s.StopBits,
			UnitID:   s.UnitID,
			Timeout:  time.Duration(s.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		ch, closeFn = c, c.Close

	case cfg.TransportI2C:
		c, err := i2c.Open(i2c.Config{Bus: l.I2C.Bus, Addr: l.I2C.Addr})
		if err != nil {
			return nil, nil, err
		}
		ch, closeFn = c, c.Close

	default:
		return nil, nil, fmt.Errorf("transfer: unsupported transport %q", l.Transport)
	}

	if l.Trace {
		ch = channel.Traced(l.Transport, ch)
	}
	return ch, closeFn, nil
}

// Build constructs a Runner and wires the channel lifecycle.
// Connection is opened once (fail fast at startup) and owned by the caller
// through the returned closer.
func Build(c *cfg.Config) (*Runner, func() error, error) {
	ch, closeCh, err := OpenChannel(c.Link)
	if err != nil {
		return nil, nil, err
	}

	cycle, err := NewCycle(CycleConfig{
		Layout:         LayoutFrom(*c.Link.Layout),
		Settle:         time.Duration(*c.Link.SettleMs) * time.Millisecond,
		RejectOverflow: c.Link.Overflow == cfg.OverflowReject,
	}, ch)
	if err != nil {
		_ = closeCh()
		return nil, nil, err
	}

	in := c.Run.Inputs
	r, err := NewRunner(RunnerConfig{
		Cycles:          c.Run.Cycles,
		Interval:        time.Duration(c.Run.IntervalMs) * time.Millisecond,
		Inputs:          LinearInputs(in.X, in.Y, in.StepX, in.StepY),
		ContinueOnError: c.Run.OnError == cfg.OnErrorContinue,
	}, cycle)
	if err != nil {
		_ = closeCh()
		return nil, nil, err
	}

	return r, closeCh, nil
}
