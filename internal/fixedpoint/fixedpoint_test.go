package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMul32x32Into32(t *testing.T) {
	tests := []struct {
		name  string
		a, b  int32
		shift uint
		want  int32
	}{
		{"unity Q31", math.MaxInt32, 1 << 20, 31, (1 << 20) - 1},
		{"negative operand", -1 << 20, 1 << 16, 16, -1 << 20},
		{"rounds toward negative infinity", -3, 1, 1, -2},
		{"Q30 product", 1 << 30, 1 << 30, 30, 1 << 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mul32x32Into32(tt.a, tt.b, tt.shift))
		})
	}
}

func TestSat16(t *testing.T) {
	assert.Equal(t, int16(math.MaxInt16), Sat16(40000))
	assert.Equal(t, int16(math.MinInt16), Sat16(-40000))
	assert.Equal(t, int16(-123), Sat16(-123))
}

func TestAbs32(t *testing.T) {
	assert.Equal(t, int32(5), Abs32(-5))
	assert.Equal(t, int32(5), Abs32(5))
	assert.Equal(t, int32(math.MaxInt32), Abs32(math.MinInt32))
}

func TestShiftSat16(t *testing.T) {
	src := []int16{math.MaxInt16, math.MinInt16, 3, -3}

	right := make([]int16, len(src))
	ShiftSat16(right, src, -1)
	assert.Equal(t, []int16{16383, -16384, 1, -2}, right)

	left := make([]int16, len(src))
	ShiftSat16(left, src, 1)
	assert.Equal(t, []int16{math.MaxInt16, math.MinInt16, 6, -6}, left)

	// In place.
	buf := []int16{100, -100}
	ShiftSat16(buf, buf, -2)
	assert.Equal(t, []int16{25, -25}, buf)
}

func TestDivTrunc32(t *testing.T) {
	assert.Equal(t, int32(-2), DivTrunc32(-7, 3))
	assert.Equal(t, int32(2), DivTrunc32(7, 3))
	assert.Equal(t, int32(0), DivTrunc32(7, 0))
}
