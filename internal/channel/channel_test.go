// internal/channel/channel_test.go
package channel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedErr struct{ code uint16 }

func (c codedErr) Error() string { return fmt.Sprintf("coded %d", c.code) }
func (c codedErr) Code() uint16  { return c.code }

type memChannel struct {
	regs   map[Address]byte
	writes int
	fail   error
}

func (m *memChannel) WriteRegister(addr Address, value byte) error {
	if m.fail != nil {
		return m.fail
	}
	m.writes++
	m.regs[addr] = value
	return nil
}

func (m *memChannel) ReadRegister(addr Address) (byte, error) {
	if m.fail != nil {
		return 0, m.fail
	}
	return m.regs[addr], nil
}

func TestWrap(t *testing.T) {
	require.NoError(t, Wrap(OpWrite, 0x10, nil))

	base := errors.New("bus fault")
	err := Wrap(OpWrite, 0x207B, base)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, OpWrite, ce.Op)
	assert.Equal(t, Address(0x207B), ce.Addr)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "channel: write 0x207B: bus fault", err.Error())

	// already a channel error: left alone
	again := Wrap(OpRead, 0x2000, fmt.Errorf("ctx: %w", err))
	require.ErrorAs(t, again, &ce)
	assert.Equal(t, OpWrite, ce.Op)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, uint16(1), (&Error{Op: OpWrite, Err: errors.New("x")}).Code())
	assert.Equal(t, uint16(2), (&Error{Op: OpRead, Err: errors.New("x")}).Code())
	assert.Equal(t, uint16(11), (&Error{Op: OpRead, Err: codedErr{11}}).Code())
}

func TestTracedPassesThrough(t *testing.T) {
	mem := &memChannel{regs: map[Address]byte{0x2000: 0x42}}
	ch := Traced("t", mem)

	require.NoError(t, ch.WriteRegister(0x207B, 0x01))
	assert.Equal(t, 1, mem.writes)
	assert.Equal(t, byte(0x01), mem.regs[0x207B])

	b, err := ch.ReadRegister(0x2000)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b)

	mem.fail = errors.New("down")
	assert.ErrorIs(t, ch.WriteRegister(0x207B, 0x02), mem.fail)
	_, err = ch.ReadRegister(0x2000)
	assert.ErrorIs(t, err, mem.fail)
}
