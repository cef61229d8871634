// internal/transfer/receiver.go
package transfer

import (
	"github.com/tamzrod/zestlink/internal/channel"
)

// Receive reads n (1..4) byte registers starting at base and assembles them
// into an unsigned value. The byte at base is least significant; registers are
// visited from base+n-1 down to base and shifted in.
// On failure no partial value is returned.
func Receive(ch channel.RegisterChannel, base channel.Address, n int) (uint32, error) {
	if n < 1 || n > 4 {
		return 0, ErrByteCount
	}

	var acc uint32
	for i := n - 1; i >= 0; i-- {
		addr := base + channel.Address(i)
		b, err := ch.ReadRegister(addr)
		if err != nil {
			return 0, channel.Wrap(channel.OpRead, addr, err)
		}
		acc = acc<<8 | uint32(b)
	}
	return acc, nil
}
