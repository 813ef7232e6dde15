// Package biquad implements the second-order band-pass kernels driven by the
// analyzer: one with 16-bit data and Q14 coefficients, one with a 32-bit Q16
// feedback path and Q30 coefficients.
//
// Both kernels evaluate
//
//	y(n) = A0*(x(n) - x(n-2)) + B1*y(n-1) + B2*y(n-2)
//
// with truncating shifts and two's complement wraparound.
package biquad

import "github.com/tphakala/go-audio-spectrum/internal/fixedpoint"

// Tap slots. The layout is shared by both kernels.
const (
	tapX1 = iota // x(n-1)
	tapY1        // y(n-1)
	tapX2        // x(n-2)
	tapY2        // y(n-2)
	numTaps
)

// Fixed-point formats of the two kernels.
const (
	shiftC14      = 14
	shiftC30      = 30
	shiftC30Input = 14 // Q30 coefficient times Q0 input lands in Q16
	shiftQ16      = 16
)

// Coefs is one band-pass coefficient record. B1 and B2 are the feedback gains
// applied to y(n-1) and y(n-2).
type Coefs struct {
	A0 int32
	B1 int32
	B2 int32
}

// Instance holds the coefficients of one filter as the kernels consume them.
// It carries no pointers so it can live in caller-provided memory.
type Instance struct {
	k0 int32 // feed-forward, applied to x(n)-x(n-2)
	k1 int32 // feedback on y(n-2)
	k2 int32 // feedback on y(n-1)
}

// Taps is the persistent history of one filter.
type Taps [numTaps]int32

// Init loads c into the instance.
func (in *Instance) Init(c Coefs) {
	in.k0 = c.A0
	in.k1 = c.B2
	in.k2 = c.B1
}

// Coefs returns the record the instance was loaded with.
func (in *Instance) Coefs() Coefs {
	return Coefs{A0: in.k0, B1: in.k2, B2: in.k1}
}

// Clear zeroes the filter history.
func (t *Taps) Clear() {
	*t = Taps{}
}

// ProcessC14 filters src into dst with Q14 coefficients. dst and src may not
// overlap unless they are the same slice.
func ProcessC14(in *Instance, t *Taps, src, dst []int16) {
	n := min(len(src), len(dst))
	k0, k1, k2 := in.k0, in.k1, in.k2
	x1, y1, x2, y2 := t[tapX1], t[tapY1], t[tapX2], t[tapY2]

	for i := range n {
		x := int32(src[i])
		acc := k0*(x-x2) + k1*y2 + k2*y1
		y := int32(int16(acc >> shiftC14))

		y2 = y1
		x2 = x1
		y1 = y
		x1 = x
		dst[i] = int16(y)
	}

	t[tapX1], t[tapY1], t[tapX2], t[tapY2] = x1, y1, x2, y2
}

// ProcessC30 filters src into dst with Q30 coefficients. The feedback path
// keeps y in Q16 so low, narrow bands keep their resolution.
func ProcessC30(in *Instance, t *Taps, src, dst []int16) {
	n := min(len(src), len(dst))
	k0, k1, k2 := in.k0, in.k1, in.k2
	x1, y1, x2, y2 := t[tapX1], t[tapY1], t[tapX2], t[tapY2]

	for i := range n {
		x := int32(src[i])
		y := fixedpoint.Mul32x32Into32(k0, x-x2, shiftC30Input)
		y += fixedpoint.Mul32x32Into32(k1, y2, shiftC30)
		y += fixedpoint.Mul32x32Into32(k2, y1, shiftC30)

		y2 = y1
		y1 = y
		x2 = x1
		x1 = x
		dst[i] = int16(y >> shiftQ16)
	}

	t[tapX1], t[tapY1], t[tapX2], t[tapY2] = x1, y1, x2, y2
}
