// internal/channel/channel.go
package channel

import (
	"errors"
	"fmt"
)

// Address identifies one byte-wide device register.
type Address uint16

// RegisterChannel is the only device capability the transfer core uses.
// Implementations are synchronous: each call returns after the operation
// has completed, and writes to one address are applied in call order.
// A channel is not safe for concurrent use; one channel per physical device.
type RegisterChannel interface {
	WriteRegister(addr Address, value byte) error
	ReadRegister(addr Address) (byte, error)
}

// Op names the register operation that failed.
type Op string

const (
	OpWrite Op = "write"
	OpRead  Op = "read"
)

// Error is a failed register operation at the channel boundary.
type Error struct {
	Op   Op
	Addr Address
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("channel: %s 0x%04X: %v", e.Op, uint16(e.Addr), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code is a best-effort status code: the wrapped error's code if it has one,
// otherwise 1 for writes and 2 for reads.
func (e *Error) Code() uint16 {
	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(e.Err, &c) {
		return c.Code()
	}
	if e.Op == OpRead {
		return 2
	}
	return 1
}

// Wrap returns err as a *Error for op at addr.
// An err that already is a *Error is returned unchanged.
func Wrap(op Op, addr Address, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Op: op, Addr: addr, Err: err}
}
