// internal/channel/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/zestlink/internal/channel"
)

// registerClient is the subset of modbus.Client this adapter uses.
type registerClient interface {
	WriteSingleRegister(address, value uint16) ([]byte, error)
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
}

// Client implements channel.RegisterChannel over Modbus.
// Each byte register is one holding register; the byte lives in the low half.
type Client struct {
	mu      sync.Mutex
	handler io.Closer
	client  registerClient
}

// TCPConfig is minimal Modbus TCP transport config.
type TCPConfig struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// RTUConfig is Modbus RTU (serial) transport config.
type RTUConfig struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
	UnitID   uint8
	Timeout  time.Duration
}

// NewTCP creates a connected Modbus TCP channel.
func NewTCP(cfg TCPConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus channel: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus channel: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// NewRTU opens a Modbus RTU channel on a serial device.
func NewRTU(cfg RTUConfig) (*Client, error) {
	if cfg.Device == "" {
		return nil, errors.New("modbus channel: serial device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.SlaveId = cfg.UnitID
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus channel: open %s: %w", cfg.Device, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- channel.RegisterChannel ----

func (c *Client) WriteRegister(addr channel.Address, value byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.client.WriteSingleRegister(uint16(addr), uint16(value)); err != nil {
		return channel.Wrap(channel.OpWrite, addr, classify(err))
	}
	return nil
}

func (c *Client) ReadRegister(addr channel.Address) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.client.ReadHoldingRegisters(uint16(addr), 1)
	if err != nil {
		return 0, channel.Wrap(channel.OpRead, addr, classify(err))
	}
	if len(p) < 2 {
		return 0, channel.Wrap(channel.OpRead, addr, errors.New("modbus: short read-registers payload"))
	}
	// register big-endian; byte register in the low half
	return p[1], nil
}

// ---- errors ----

// exceptionError carries a Modbus exception as a status code.
type exceptionError struct {
	err  *modbus.ModbusError
	code uint16
}

func (e *exceptionError) Error() string { return e.err.Error() }
func (e *exceptionError) Unwrap() error { return e.err }
func (e *exceptionError) Code() uint16  { return e.code }

// classify maps Modbus exceptions to 0x100 | exception code.
func classify(err error) error {
	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return &exceptionError{err: me, code: 0x100 | uint16(me.ExceptionCode)}
	}
	return err
}
