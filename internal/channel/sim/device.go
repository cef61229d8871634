// internal/channel/sim/device.go
package sim

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/tamzrod/zestlink/internal/channel"
	"github.com/tamzrod/zestlink/internal/fixedpoint"
)

// Config is the simulated accelerator's register map.
type Config struct {
	XAddr         channel.Address
	YAddr         channel.Address
	OutputAddr    channel.Address
	MagnitudeAddr channel.Address

	// Latency is how long the device needs after the last parameter byte
	// before new results are visible. Reads before that see the previous result.
	Latency time.Duration
}

// Device is an in-process accelerator behind the register channel contract.
//
// Each parameter register is a 32-bit shift latch: every byte written is
// shifted in from the right and the fourth byte commits the value.
// Writing one parameter drops any partial value latched for the other,
// so a write sequence cut short resynchronizes on the next parameter.
// Committing Y starts a computation over the last committed X and Y:
//
//	magnitude = hypot(X, Y)   (fixed-point, LSB at MagnitudeAddr)
//	output    = quadrant of (X, Y), 1..4
type Device struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	latch map[channel.Address]uint32
	count map[channel.Address]int
	x, y  fixedpoint.Value

	visible pending
	next    *pending
}

type pending struct {
	at        time.Time
	output    byte
	magnitude uint32
}

// New creates a simulated device.
func New(cfg Config) (*Device, error) {
	if cfg.XAddr == cfg.YAddr {
		return nil, fmt.Errorf("sim: parameter registers must differ (0x%04X)", uint16(cfg.XAddr))
	}
	return &Device{
		cfg:   cfg,
		now:   time.Now,
		latch: make(map[channel.Address]uint32),
		count: make(map[channel.Address]int),
	}, nil
}

// ---- channel.RegisterChannel ----

func (d *Device) WriteRegister(addr channel.Address, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if addr != d.cfg.XAddr && addr != d.cfg.YAddr {
		return channel.Wrap(channel.OpWrite, addr, fmt.Errorf("sim: register not writable"))
	}

	for a := range d.count {
		if a != addr && d.count[a] != 0 {
			d.latch[a] = 0
			d.count[a] = 0
		}
	}

	d.latch[addr] = d.latch[addr]<<8 | uint32(value)
	d.count[addr]++
	if d.count[addr] < 4 {
		return nil
	}

	v := fixedpoint.FromBits(d.latch[addr])
	d.latch[addr] = 0
	d.count[addr] = 0

	if addr == d.cfg.XAddr {
		d.x = v
		return nil
	}
	d.y = v
	d.compute()
	return nil
}

func (d *Device) ReadRegister(addr channel.Address) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.next != nil && !d.now().Before(d.next.at) {
		d.visible = *d.next
		d.next = nil
	}

	switch {
	case addr == d.cfg.OutputAddr:
		return d.visible.output, nil
	case addr >= d.cfg.MagnitudeAddr && addr < d.cfg.MagnitudeAddr+4:
		shift := 8 * uint(addr-d.cfg.MagnitudeAddr)
		return byte(d.visible.magnitude >> shift), nil
	}
	return 0, channel.Wrap(channel.OpRead, addr, fmt.Errorf("sim: register not readable"))
}

func (d *Device) compute() {
	x := fixedpoint.Decode(d.x)
	y := fixedpoint.Decode(d.y)

	d.next = &pending{
		at:        d.now().Add(d.cfg.Latency),
		output:    quadrant(x, y),
		magnitude: fixedpoint.Encode(math.Hypot(x, y)).Bits(),
	}
}

func quadrant(x, y float64) byte {
	switch {
	case x >= 0 && y >= 0:
		return 1
	case x < 0 && y >= 0:
		return 2
	case x < 0:
		return 3
	default:
		return 4
	}
}
