// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	if err := validateLink(&cfg.Link); err != nil {
		return err
	}
	return validateRun(&cfg.Run)
}

func validateLink(l *LinkConfig) error {
	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	switch l.Transport {
	case TransportSim:
		if l.Sim != nil && l.Sim.LatencyMs < 0 {
			return fmt.Errorf("link.sim.latency_ms must be >= 0")
		}

	case TransportModbusTCP:
		if l.Modbus == nil {
			return fmt.Errorf("link.transport %q requires link.modbus", l.Transport)
		}
		if l.Modbus.Endpoint == "" {
			return fmt.Errorf("link.modbus.endpoint required")
		}
		if l.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("link.modbus.timeout_ms must be >= 0")
		}

	case TransportModbusRTU:
		if l.Serial == nil {
			return fmt.Errorf("link.transport %q requires link.serial", l.Transport)
		}
		s := l.Serial
		if s.Device == "" {
			return fmt.Errorf("link.serial.device required")
		}
		switch s.Parity {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("link.serial.parity %q: want N, E or O", s.Parity)
		}
		if s.DataBits != 0 && (s.DataBits < 5 || s.DataBits > 8) {
			return fmt.Errorf("link.serial.data_bits %d: want 5..8", s.DataBits)
		}
		if s.StopBits != 0 && s.StopBits != 1 && s.StopBits != 2 {
			return fmt.Errorf("link.serial.stop_bits %d: want 1 or 2", s.StopBits)
		}
		if s.BaudRate < 0 || s.TimeoutMs < 0 {
			return fmt.Errorf("link.serial: baud_rate and timeout_ms must be >= 0")
		}

	case TransportI2C:
		if l.I2C == nil {
			return fmt.Errorf("link.transport %q requires link.i2c", l.Transport)
		}
		if l.I2C.Addr == 0 || l.I2C.Addr > 0x7F {
			return fmt.Errorf("link.i2c.addr 0x%02X: want 7-bit address", l.I2C.Addr)
		}

	case "":
		return fmt.Errorf("link.transport required")

	default:
		return fmt.Errorf("link.transport %q: unsupported", l.Transport)
	}

	// ------------------------------------------------------------
	// TIMING + POLICY
	// ------------------------------------------------------------

	if l.SettleMs != nil && *l.SettleMs < 0 {
		return fmt.Errorf("link.settle_ms must be >= 0")
	}

	switch l.Overflow {
	case "", OverflowWrap, OverflowReject:
	default:
		return fmt.Errorf("link.overflow %q: want %s or %s", l.Overflow, OverflowWrap, OverflowReject)
	}

	// ------------------------------------------------------------
	// REGISTER MAP GEOMETRY
	// ------------------------------------------------------------

	if l.Layout == nil {
		return nil
	}
	return ValidateLayout(*l.Layout)
}

// ValidateLayout checks register map geometry.
// Write and read registers are separate spaces, so overlap is only checked
// within each direction.
func ValidateLayout(lo LayoutConfig) error {
	type span struct {
		start uint32
		end   uint32
		name  string
	}

	if lo.OutputBytes < 1 || lo.OutputBytes > 4 {
		return fmt.Errorf("layout.output_bytes %d: want 1..4", lo.OutputBytes)
	}
	if lo.MagnitudeBytes < 1 || lo.MagnitudeBytes > 4 {
		return fmt.Errorf("layout.magnitude_bytes %d: want 1..4", lo.MagnitudeBytes)
	}

	x := uint32(lo.WriteBase) + uint32(lo.XOffset)
	y := uint32(lo.WriteBase) + uint32(lo.YOffset)
	if x > 0xFFFF || y > 0xFFFF {
		return fmt.Errorf("layout: parameter register beyond 0xFFFF (x=0x%X y=0x%X)", x, y)
	}
	if x == y {
		return fmt.Errorf("layout: x and y share parameter register 0x%04X", x)
	}

	reads := []span{
		{
			start: uint32(lo.ReadBase) + uint32(lo.OutputOffset),
			name:  "output",
		},
		{
			start: uint32(lo.ReadBase) + uint32(lo.MagnitudeOffset),
			name:  "magnitude",
		},
	}
	reads[0].end = reads[0].start + uint32(lo.OutputBytes) - 1
	reads[1].end = reads[1].start + uint32(lo.MagnitudeBytes) - 1

	for _, s := range reads {
		if s.end > 0xFFFF {
			return fmt.Errorf("layout: %s registers 0x%X-0x%X beyond 0xFFFF", s.name, s.start, s.end)
		}
	}

	// overlap check (inclusive)
	a, b := reads[0], reads[1]
	if !(a.end < b.start || a.start > b.end) {
		return fmt.Errorf(
			"layout: %s range 0x%04X-0x%04X overlaps %s range 0x%04X-0x%04X",
			a.name, a.start, a.end,
			b.name, b.start, b.end,
		)
	}

	return nil
}

func validateRun(r *RunConfig) error {
	if r.Cycles < 0 {
		return fmt.Errorf("run.cycles must be >= 0")
	}
	if r.IntervalMs < 0 {
		return fmt.Errorf("run.interval_ms must be >= 0")
	}

	switch r.OnError {
	case "", OnErrorAbort, OnErrorContinue:
	default:
		return fmt.Errorf("run.on_error %q: want %s or %s", r.OnError, OnErrorAbort, OnErrorContinue)
	}

	switch r.Report.Format {
	case "", ReportText, ReportCBOR:
	default:
		return fmt.Errorf("run.report.format %q: want %s or %s", r.Report.Format, ReportText, ReportCBOR)
	}

	return nil
}
