// internal/transfer/transmitter_test.go
package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/zestlink/internal/channel"
	"github.com/tamzrod/zestlink/internal/fixedpoint"
)

func TestTransmit_MSBFirstSameAddress(t *testing.T) {
	ch := newFakeChannel(nil)

	require.NoError(t, Transmit(ch, fixedpoint.Value(0x00010203), 0x207B))

	assert.Equal(t, []opCall{
		{op: channel.OpWrite, addr: 0x207B, value: 0x00},
		{op: channel.OpWrite, addr: 0x207B, value: 0x01},
		{op: channel.OpWrite, addr: 0x207B, value: 0x02},
		{op: channel.OpWrite, addr: 0x207B, value: 0x03},
	}, ch.ops)
}

func TestTransmit_NegativeValue(t *testing.T) {
	ch := newFakeChannel(nil)

	require.NoError(t, Transmit(ch, fixedpoint.Encode(-1), 0x10))

	var got []byte
	for _, o := range ch.ops {
		got = append(got, o.value)
	}
	assert.Equal(t, []byte{0xFF, 0xFF, 0x00, 0x00}, got)
}

func TestTransmit_StopsAtFailedWrite(t *testing.T) {
	ch := newFakeChannel(nil)
	ch.failWrite = 3

	err := Transmit(ch, fixedpoint.Value(0x00010203), 0x207B)

	var ce *channel.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, channel.OpWrite, ce.Op)
	assert.Equal(t, channel.Address(0x207B), ce.Addr)
	assert.ErrorIs(t, err, errBus)

	// two landed, the third failed, the fourth was never issued
	assert.Len(t, ch.ops, 2)
	assert.Equal(t, 3, ch.writes)
}
