// internal/config/normalize.go
package config

// Default register map and timing, as shipped on the board.
const (
	DefaultWriteBase       uint16 = 0x207B
	DefaultXOffset         uint16 = 0
	DefaultYOffset         uint16 = 1
	DefaultReadBase        uint16 = 0x2000
	DefaultOutputOffset    uint16 = 0x7C
	DefaultOutputBytes            = 1
	DefaultMagnitudeOffset uint16 = 0
	DefaultMagnitudeBytes         = 4

	DefaultSettleMs  = 10
	DefaultCycles    = 100
	DefaultTimeoutMs = 1000
	DefaultBaudRate  = 19200
)

// DefaultLayout returns the board register map.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		WriteBase:       DefaultWriteBase,
		XOffset:         DefaultXOffset,
		YOffset:         DefaultYOffset,
		ReadBase:        DefaultReadBase,
		OutputOffset:    DefaultOutputOffset,
		OutputBytes:     DefaultOutputBytes,
		MagnitudeOffset: DefaultMagnitudeOffset,
		MagnitudeBytes:  DefaultMagnitudeBytes,
	}
}

// Normalize applies defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	l := &cfg.Link

	if l.Layout == nil {
		def := DefaultLayout()
		l.Layout = &def
	}
	if l.SettleMs == nil {
		v := DefaultSettleMs
		l.SettleMs = &v
	}
	if l.Overflow == "" {
		l.Overflow = OverflowWrap
	}

	switch l.Transport {
	case TransportSim:
		if l.Sim == nil {
			l.Sim = &SimConfig{}
		}
	case TransportModbusTCP:
		if l.Modbus.TimeoutMs == 0 {
			l.Modbus.TimeoutMs = DefaultTimeoutMs
		}
	case TransportModbusRTU:
		s := l.Serial
		if s.BaudRate == 0 {
			s.BaudRate = DefaultBaudRate
		}
		if s.DataBits == 0 {
			s.DataBits = 8
		}
		if s.Parity == "" {
			s.Parity = "N"
		}
		if s.StopBits == 0 {
			s.StopBits = 1
		}
		if s.TimeoutMs == 0 {
			s.TimeoutMs = DefaultTimeoutMs
		}
	}

	r := &cfg.Run

	// Validate rejects negatives; zero means unset.
	if r.Cycles == 0 {
		r.Cycles = DefaultCycles
	}
	if r.OnError == "" {
		r.OnError = OnErrorAbort
	}
	if r.Report.Format == "" {
		r.Report.Format = ReportText
	}
}
