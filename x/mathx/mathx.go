// Package mathx holds the integer helpers the mapping and PWM code share.
// Everything is integer-only so it behaves the same on MCU and host.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]; lo must not exceed hi.
func Clamp[T constraints.Integer](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Between reports lo <= v <= hi.
func Between[T constraints.Integer](v, lo, hi T) bool {
	return lo <= v && v <= hi
}

// Abs for signed integers. The most negative value maps to itself.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Offset returns raw-center as a signed 32-bit value.
func Offset(raw, center uint16) int32 {
	return int32(raw) - int32(center)
}

// Scale returns (v*num)/den with 32-bit intermediates, truncating toward zero.
// den==0 yields 0.
func Scale(v, num, den int32) int32 {
	if den == 0 {
		return 0
	}
	return (v * num) / den
}

// ScaleU16 maps a 16-bit level in [0..65535] onto [0..top].
func ScaleU16(level uint16, top uint32) uint32 {
	return uint32((uint64(level) * uint64(top)) / 65535)
}
