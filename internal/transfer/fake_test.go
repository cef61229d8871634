// internal/transfer/fake_test.go
package transfer

import (
	"errors"
	"fmt"

	"github.com/tamzrod/zestlink/internal/channel"
)

// ---- fake register channel ----

type opCall struct {
	op    channel.Op
	addr  channel.Address
	value byte
}

type fakeChannel struct {
	ops  []opCall
	regs map[channel.Address]byte

	// failWrite fails the n-th write (1-based); 0 = never.
	failWrite int
	// failRead fails reads of this address.
	failRead *channel.Address

	writes int
}

var errBus = errors.New("bus fault")

func newFakeChannel(regs map[channel.Address]byte) *fakeChannel {
	if regs == nil {
		regs = map[channel.Address]byte{}
	}
	return &fakeChannel{regs: regs}
}

func (f *fakeChannel) WriteRegister(addr channel.Address, value byte) error {
	f.writes++
	if f.failWrite != 0 && f.writes == f.failWrite {
		return fmt.Errorf("write #%d: %w", f.writes, errBus)
	}
	f.ops = append(f.ops, opCall{op: channel.OpWrite, addr: addr, value: value})
	return nil
}

func (f *fakeChannel) ReadRegister(addr channel.Address) (byte, error) {
	if f.failRead != nil && *f.failRead == addr {
		return 0, errBus
	}
	f.ops = append(f.ops, opCall{op: channel.OpRead, addr: addr})
	return f.regs[addr], nil
}

func (f *fakeChannel) writesOnly() []opCall {
	var out []opCall
	for _, o := range f.ops {
		if o.op == channel.OpWrite {
			out = append(out, o)
		}
	}
	return out
}

func (f *fakeChannel) readsOnly() []channel.Address {
	var out []channel.Address
	for _, o := range f.ops {
		if o.op == channel.OpRead {
			out = append(out, o.addr)
		}
	}
	return out
}

// putLE stores v little-endian across n registers starting at base.
func putLE(regs map[channel.Address]byte, base channel.Address, v uint32, n int) {
	for i := 0; i < n; i++ {
		regs[base+channel.Address(i)] = byte(v >> (8 * i))
	}
}
