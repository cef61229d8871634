// internal/channel/i2c/client_test.go
package i2c

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"

	"github.com/tamzrod/zestlink/internal/channel"
)

type fakeConn struct {
	tx   [][]byte
	regs map[uint16]byte
	err  error
}

func (f *fakeConn) String() string      { return "fake" }
func (f *fakeConn) Duplex() conn.Duplex { return conn.Half }

func (f *fakeConn) Tx(w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.tx = append(f.tx, append([]byte(nil), w...))
	addr := uint16(w[0])<<8 | uint16(w[1])
	if len(w) == 3 {
		f.regs[addr] = w[2]
	}
	if len(r) > 0 {
		r[0] = f.regs[addr]
	}
	return nil
}

func TestWriteThenRead(t *testing.T) {
	fc := &fakeConn{regs: map[uint16]byte{}}
	c, err := New(fc)
	require.NoError(t, err)

	require.NoError(t, c.WriteRegister(0x207B, 0x5A))
	assert.Equal(t, []byte{0x20, 0x7B, 0x5A}, fc.tx[0])

	b, err := c.ReadRegister(0x207B)
	require.NoError(t, err)
	assert.Equal(t, byte(0x5A), b)
	assert.Equal(t, []byte{0x20, 0x7B}, fc.tx[1])
}

func TestBusFailureIsChannelError(t *testing.T) {
	c, err := New(&fakeConn{err: errors.New("nack")})
	require.NoError(t, err)

	_, err = c.ReadRegister(0x2003)
	var ce *channel.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, channel.OpRead, ce.Op)
	assert.Equal(t, channel.Address(0x2003), ce.Addr)
}

func TestNewRequiresConn(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestOpenRejectsBadAddress(t *testing.T) {
	_, err := Open(Config{Addr: 0x80})
	assert.Error(t, err)
}
