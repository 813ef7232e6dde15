package spectrum

import (
	"github.com/tphakala/go-audio-spectrum/internal/biquad"
	"github.com/tphakala/go-audio-spectrum/internal/fixedpoint"
)

// deriveBandPass computes the band-pass record of band at the given
// precision. Single precision yields Q14 values, double precision Q30.
func deriveBandPass(p Precision, rate SampleRate, band FilterParams) biquad.Coefs {
	t0, b2 := bandPassAngleAndPole(rate, band)
	switch p {
	case PrecisionDouble:
		return doublePrecisionCoefs(t0, b2)
	default:
		return singlePrecisionCoefs(t0, b2)
	}
}

// bandPassAngleAndPole returns t0 = 2*pi*fc/fs in Q25 and the Q30 feedback
// term b2, which depends only on t0 and Q and is shared by both precisions.
func bandPassAngleAndPole(rate SampleRate, band FilterParams) (t0, b2 int32) {
	t0 = int32(band.CenterHz) * twoPiOnFs[rate]
	q := int32(band.Q)

	dt0 := bandwidthScale * (t0 >> 10)
	den := (q << 19) + (dt0 >> 2)
	num := (dt0 >> 3) - (q << 18)
	b2 = fixedpoint.DivTrunc32(num, den>>16) << 15
	return t0, b2
}

// singlePrecisionCoefs approximates cos(t0) with a 6-term polynomial over
// [0, pi] and returns {a0, b1, b2} in Q14.
func singlePrecisionCoefs(t0, b2 int32) biquad.Coefs {
	t0 = (t0 >> 10) * singleAngleGain
	x := int32(int16(t0 >> 16))

	factor := int32(polyUnity)
	var cos int32
	for _, c := range cosCoef[1:] {
		cos += (factor * c) >> polyTermShift
		factor = (factor * x) >> polyStepShift
	}
	cos <<= cosCoef[0] + cosOutShift

	b1 := ((unityQ30 - b2) >> 16) * (cos >> 16)
	a0 := (unityQ30 + b2) >> 1

	return biquad.Coefs{
		A0: int32(int16(a0 >> 16)),
		B1: int32(int16(b1 >> 15)),
		B2: int32(int16(b2 >> 16)),
	}
}

// doublePrecisionCoefs approximates cos(t0)-1 with a 4-term polynomial over
// [0, pi/25] and returns {a0, b1, b2} in Q30. Working on the error term keeps
// b1 accurate where cos(t0) is close to 1.
func doublePrecisionCoefs(t0, b2 int32) biquad.Coefs {
	t0 = (t0 >> 6) * doubleAngleGain
	x := int32(int16(t0 >> 16))

	factor := int32(polyUnity)
	var cosErr int32
	for _, c := range dpCosCoef[1:] {
		cosErr += (factor * c) >> polyTermShift
		factor = (factor * x) >> polyStepShift
	}
	cosErr <<= dpCosCoef[0]

	b1 := unityQ30 - b2
	b1 -= (((b1 >> 16) * (cosErr >> 10)) >> 6)
	a0 := (unityQ30 + b2) >> 1

	return biquad.Coefs{A0: a0, B1: b1, B2: b2}
}
