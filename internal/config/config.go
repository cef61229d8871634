// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Link LinkConfig `yaml:"link"`
	Run  RunConfig  `yaml:"run"`
}

// ---- LINK ----

type LinkConfig struct {
	Transport string        `yaml:"transport"` // sim | modbus-tcp | modbus-rtu | i2c
	Modbus    *ModbusConfig `yaml:"modbus"`
	Serial    *SerialConfig `yaml:"serial"`
	I2C       *I2CConfig    `yaml:"i2c"`
	Sim       *SimConfig    `yaml:"sim"`

	Layout   *LayoutConfig `yaml:"layout"`
	SettleMs *int          `yaml:"settle_ms"`
	Overflow string        `yaml:"overflow"` // wrap | reject
	Trace    bool          `yaml:"trace"`
}

const (
	TransportSim       = "sim"
	TransportModbusTCP = "modbus-tcp"
	TransportModbusRTU = "modbus-rtu"
	TransportI2C       = "i2c"
)

const (
	OverflowWrap   = "wrap"
	OverflowReject = "reject"
)

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type SerialConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // N | E | O
	StopBits  int    `yaml:"stop_bits"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type I2CConfig struct {
	Bus  string `yaml:"bus"`
	Addr uint16 `yaml:"addr"`
}

type SimConfig struct {
	LatencyMs int `yaml:"latency_ms"`
}

// ---- REGISTER MAP ----

// LayoutConfig is the device register map.
// Parameter registers are WriteBase+offset; result registers are ReadBase+offset.
type LayoutConfig struct {
	WriteBase uint16 `yaml:"write_base"`
	XOffset   uint16 `yaml:"x_offset"`
	YOffset   uint16 `yaml:"y_offset"`

	ReadBase        uint16 `yaml:"read_base"`
	OutputOffset    uint16 `yaml:"output_offset"`
	OutputBytes     int    `yaml:"output_bytes"`
	MagnitudeOffset uint16 `yaml:"magnitude_offset"`
	MagnitudeBytes  int    `yaml:"magnitude_bytes"`
}

// ---- RUN ----

type RunConfig struct {
	Cycles     int          `yaml:"cycles"`
	IntervalMs int          `yaml:"interval_ms"`
	OnError    string       `yaml:"on_error"` // abort | continue
	Inputs     InputsConfig `yaml:"inputs"`
	Report     ReportConfig `yaml:"report"`
}

const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"
)

// InputsConfig generates x_i = X + StepX*i and y_i = Y + StepY*i.
type InputsConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	StepX float64 `yaml:"step_x"`
	StepY float64 `yaml:"step_y"`
}

type ReportConfig struct {
	Format string `yaml:"format"` // text | cbor
	Path   string `yaml:"path"`   // "" = stdout
}

const (
	ReportText = "text"
	ReportCBOR = "cbor"
)

// Load reads and decodes a YAML config file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes YAML config bytes. Unknown keys are rejected.
// Layout keys left out of a layout block keep the board defaults.
func Parse(raw []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	lo := DefaultLayout()
	cfg := Config{Link: LinkConfig{Layout: &lo}}
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
