// internal/fixedpoint/codec.go
package fixedpoint

import (
	"encoding/binary"
	"errors"
	"math"
)

// FractionalBits is the number of fractional bits carried on the wire.
// Protocol-locked: the device interprets every parameter with this scale.
const FractionalBits = 16

// Scale is 2^FractionalBits.
const Scale = float64(1 << FractionalBits)

// Limit is the smallest magnitude that no longer fits a signed 32-bit value.
const Limit = float64(1 << (31 - FractionalBits))

// ErrEncodingOverflow is returned by EncodeChecked for values outside (-Limit, Limit).
var ErrEncodingOverflow = errors.New("fixedpoint: value out of representable range")

// Value is a real number scaled by 2^FractionalBits.
type Value int32

// Encode truncates x*Scale toward zero.
// Out-of-range input wraps modulo 2^32, the same bits an unchecked cast leaves behind.
// NaN and infinities encode to 0.
func Encode(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	t := math.Trunc(x * Scale)

	// math.Mod is exact, so the low 32 bits survive for any finite t.
	m := math.Mod(t, 1<<32)
	return Value(uint32(int64(m)))
}

// EncodeChecked is Encode with range validation.
func EncodeChecked(x float64) (Value, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= Limit {
		return 0, ErrEncodingOverflow
	}
	return Encode(x), nil
}

// Decode returns v / Scale.
func Decode(v Value) float64 {
	return float64(v) / Scale
}

// FromBits reinterprets a raw 32-bit register value as a fixed-point value.
func FromBits(u uint32) Value {
	return Value(int32(u))
}

// Bits returns the two's complement representation.
func (v Value) Bits() uint32 {
	return uint32(v)
}

// Bytes returns the wire byte sequence, most-significant byte first.
func (v Value) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return b
}
