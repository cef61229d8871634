// internal/transfer/transmitter.go
package transfer

import (
	"github.com/tamzrod/zestlink/internal/channel"
	"github.com/tamzrod/zestlink/internal/fixedpoint"
)

// Transmit writes v to addr as four single-byte writes, most-significant first.
// Every byte targets the same register; the device shifts each one in.
// The first failed write ends the call. Bytes already sent are not rolled
// back, so the parameter register is undefined until the next full Transmit.
func Transmit(ch channel.RegisterChannel, v fixedpoint.Value, addr channel.Address) error {
	for _, b := range v.Bytes() {
		if err := ch.WriteRegister(addr, b); err != nil {
			return channel.Wrap(channel.OpWrite, addr, err)
		}
	}
	return nil
}
