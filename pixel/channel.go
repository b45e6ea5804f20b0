// Package pixel defines pixel values over a closed set of channel types,
// the pixel kinds they represent and the explicit conversions between them.
package pixel

import (
	"fmt"
	"math"
	"strings"
)

// Channel is the closed set of numeric types a pixel channel can hold.
type Channel interface {
	uint8 | int8 | int16 | float32
}

// ChannelType tags a Channel type at runtime. The numeric values are
// persisted in pyramid files and must not change.
type ChannelType uint8

const (
	U8  ChannelType = 1
	I8  ChannelType = 2
	I16 ChannelType = 3
	F32 ChannelType = 4
)

var channelTypeNames = map[ChannelType]string{
	U8:  "u8",
	I8:  "i8",
	I16: "i16",
	F32: "f32",
}

func (t ChannelType) String() string {
	if s, ok := channelTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ChannelType(%d)", uint8(t))
}

// Valid reports whether t is one of the known channel types.
func (t ChannelType) Valid() bool {
	_, ok := channelTypeNames[t]
	return ok
}

// Size returns the encoded size of one sample in bytes.
func (t ChannelType) Size() int {
	switch t {
	case U8, I8:
		return 1
	case I16:
		return 2
	case F32:
		return 4
	}
	return 0
}

// Signed reports whether the type can hold negative values.
func (t ChannelType) Signed() bool {
	return t == I8 || t == I16 || t == F32
}

// Float reports whether the type is floating point.
func (t ChannelType) Float() bool {
	return t == F32
}

// ParseChannelType parses the names produced by ChannelType.String.
func ParseChannelType(s string) (ChannelType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range channelTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown channel type %q", s)
}

// TypeOf returns the tag of the channel type T.
func TypeOf[T Channel]() ChannelType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return U8
	case int8:
		return I8
	case int16:
		return I16
	default:
		return F32
	}
}

// IsFloat reports whether T is a floating point channel type.
func IsFloat[T Channel]() bool {
	return TypeOf[T]() == F32
}

// Range returns the smallest and largest value T can hold.
func Range[T Channel]() (lo, hi float64) {
	switch TypeOf[T]() {
	case U8:
		return 0, math.MaxUint8
	case I8:
		return math.MinInt8, math.MaxInt8
	case I16:
		return math.MinInt16, math.MaxInt16
	default:
		return -math.MaxFloat32, math.MaxFloat32
	}
}

// intRange returns the integer range of T. Only valid for integer types.
func intRange[T Channel]() (lo, hi int32) {
	switch TypeOf[T]() {
	case U8:
		return 0, math.MaxUint8
	case I8:
		return math.MinInt8, math.MaxInt8
	default:
		return math.MinInt16, math.MaxInt16
	}
}

// ClampInt narrows a widened integer to T, saturating at the range of T.
// For float32 the value is converted as is.
func ClampInt[T Channel](v int32) T {
	if IsFloat[T]() {
		return T(v)
	}
	lo, hi := intRange[T]()
	if v < lo {
		v = lo
	} else if v > hi {
		v = hi
	}
	return T(v)
}

// ClampFloat narrows a float64 to T. Integer types are rounded half away
// from zero and saturated; NaN maps to zero.
func ClampFloat[T Channel](v float64) T {
	if math.IsNaN(v) {
		return 0
	}
	lo, hi := Range[T]()
	if !IsFloat[T]() {
		v = math.Round(v)
	}
	if v < lo {
		v = lo
	} else if v > hi {
		v = hi
	}
	return T(v)
}

// checkedFloat narrows v to T and fails with ErrOverflow instead of clamping.
func checkedFloat[T Channel](v float64) (T, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("NaN to %s: %w", TypeOf[T](), ErrOverflow)
	}
	if !IsFloat[T]() {
		v = math.Round(v)
	}
	lo, hi := Range[T]()
	if v < lo || v > hi {
		return 0, fmt.Errorf("%g does not fit %s: %w", v, TypeOf[T](), ErrOverflow)
	}
	return T(v), nil
}
