// internal/channel/i2c/client.go
package i2c

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/tamzrod/zestlink/internal/channel"
)

// Client implements channel.RegisterChannel on an I2C bridge that exposes
// the register file with 16-bit big-endian register addressing:
//
//	write: [addrHi addrLo value]
//	read:  [addrHi addrLo] then 1 byte
type Client struct {
	c   conn.Conn
	bus i2c.BusCloser
}

// Config selects the bus and the bridge's 7-bit address.
type Config struct {
	Bus  string // "" = first available bus
	Addr uint16
}

// Open initializes host drivers and opens the bridge on the configured bus.
func Open(cfg Config) (*Client, error) {
	if cfg.Addr == 0 || cfg.Addr > 0x7F {
		return nil, fmt.Errorf("i2c channel: invalid address 0x%02X", cfg.Addr)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("i2c channel: host init: %w", err)
	}

	b, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c channel: open bus %q: %w", cfg.Bus, err)
	}

	return &Client{
		c:   &i2c.Dev{Bus: b, Addr: cfg.Addr},
		bus: b,
	}, nil
}

// New wraps an existing connection, typically an *i2c.Dev.
func New(c conn.Conn) (*Client, error) {
	if c == nil {
		return nil, errors.New("i2c channel: conn required")
	}
	return &Client{c: c}, nil
}

// Close releases the bus if this client opened it.
func (c *Client) Close() error {
	if c.bus == nil {
		return nil
	}
	return c.bus.Close()
}

func (c *Client) WriteRegister(addr channel.Address, value byte) error {
	w := []byte{byte(addr >> 8), byte(addr), value}
	if err := c.c.Tx(w, nil); err != nil {
		return channel.Wrap(channel.OpWrite, addr, err)
	}
	return nil
}

func (c *Client) ReadRegister(addr channel.Address) (byte, error) {
	w := []byte{byte(addr >> 8), byte(addr)}
	var r [1]byte
	if err := c.c.Tx(w, r[:]); err != nil {
		return 0, channel.Wrap(channel.OpRead, addr, err)
	}
	return r[0], nil
}
