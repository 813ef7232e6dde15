// Package fixedpoint holds the integer arithmetic shared by the analyzer
// kernels: wide multiplies with a right shift, int16 saturation and the block
// helpers applied to incoming PCM.
package fixedpoint

import "math"

// Mul32x32Into32 multiplies a by b in 64 bits and returns the product shifted
// right by shift, truncated to 32 bits.
func Mul32x32Into32(a, b int32, shift uint) int32 {
	return int32((int64(a) * int64(b)) >> shift)
}

// Sat16 clamps v to the int16 range.
func Sat16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Abs32 returns |v|. math.MinInt32 maps to math.MaxInt32.
func Abs32(v int32) int32 {
	if v < 0 {
		if v == math.MinInt32 {
			return math.MaxInt32
		}
		return -v
	}
	return v
}

// ShiftSat16 arithmetic-shifts every sample of src by shift and stores the
// saturated result in dst. Positive shifts move left, negative shifts right.
// dst and src may alias.
func ShiftSat16(dst, src []int16, shift int) {
	n := min(len(dst), len(src))
	switch {
	case shift >= 0:
		for i := range n {
			dst[i] = Sat16(int32(src[i]) << uint(shift))
		}
	default:
		s := uint(-shift)
		for i := range n {
			dst[i] = src[i] >> s
		}
	}
}

// DivTrunc32 divides with truncation toward zero. A zero divisor yields 0.
func DivTrunc32(num, den int32) int32 {
	if den == 0 {
		return 0
	}
	return num / den
}
