// Package keys builds order-preserving byte encodings of typed values
// for use as adaptive radix tree keys: if a < b then the encoding of a
// sorts before the encoding of b under byte-wise comparison.
//
// Composite keys are built by appending components to the same buffer;
// string components are terminated so that a shorter component never
// bleeds into the comparison of the next one.
package keys

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

// AppendUint appends the big-endian encoding of v, widened to 8 bytes.
// Unsigned values compare the same way their encodings do.
func AppendUint[T constraints.Unsigned](dst []byte, v T) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v))
}

// AppendInt appends an order-preserving 8-byte encoding of v. The sign
// bit is flipped so negative values sort before positive ones.
func AppendInt[T constraints.Signed](dst []byte, v T) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v)^(1<<63))
}

// AppendFloat64 appends an order-preserving 8-byte encoding of v.
// Negative floats have all bits flipped, positive ones only the sign
// bit, which makes the IEEE 754 total order match byte order. NaNs sort
// after +Inf.
func AppendFloat64(dst []byte, v float64) []byte {
	u := math.Float64bits(v)
	if u&(1<<63) != 0 {
		u = ^u
	} else {
		u |= 1 << 63
	}
	return binary.BigEndian.AppendUint64(dst, u)
}

// AppendString appends s with a terminator so that in composite keys a
// string component compares strictly before any extension of itself.
// NUL bytes inside s are escaped as 0x00 0xFF; the terminator is
// 0x00 0x00, which sorts before every escaped byte.
func AppendString(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] == 0x00 {
			dst = append(dst, 0x00, 0xFF)
		} else {
			dst = append(dst, s[i])
		}
	}
	return append(dst, 0x00, 0x00)
}

// AppendBytes is AppendString for raw byte strings.
func AppendBytes(dst, b []byte) []byte {
	for _, c := range b {
		if c == 0x00 {
			dst = append(dst, 0x00, 0xFF)
		} else {
			dst = append(dst, c)
		}
	}
	return append(dst, 0x00, 0x00)
}

// Uint returns the encoding of a single unsigned component.
func Uint[T constraints.Unsigned](v T) []byte {
	return AppendUint(nil, v)
}

// Int returns the encoding of a single signed component.
func Int[T constraints.Signed](v T) []byte {
	return AppendInt(nil, v)
}

// Float64 returns the encoding of a single float component.
func Float64(v float64) []byte {
	return AppendFloat64(nil, v)
}

// String returns the encoding of a single string component.
func String(s string) []byte {
	return AppendString(nil, s)
}
