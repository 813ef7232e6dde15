// Package mathutil provides the window functions used by the FFT reference.
package mathutil

import "math"

const (
	// Series evaluation limits for BesselI0
	maxSeriesTerms = 500
	seriesEpsilon  = 1e-17

	// Kaiser & Schafer empirical beta formula
	kaiserAttHigh        = 50.0
	kaiserAttMedium      = 21.0
	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7
	kaiserBetaMedCoeff1  = 0.5842
	kaiserBetaMedPower   = 0.4
	kaiserBetaMedCoeff2  = 0.07886
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero, by summing its power series until the terms no longer matter.
func BesselI0(x float64) float64 {
	q := x * x / 4
	term, sum := 1.0, 1.0
	for k := 1.0; k < maxSeriesTerms; k++ {
		term *= q / (k * k)
		sum += term
		if term < sum*seriesEpsilon {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β giving roughly the requested
// sidelobe attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMedCoeff1*math.Pow(d, kaiserBetaMedPower) + kaiserBetaMedCoeff2*d
	default:
		return 0
	}
}

// KaiserWindow returns n symmetric Kaiser window coefficients, peaking at 1
// in the centre. A β of zero or less gives a flat window.
func KaiserWindow(n int, beta float64) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	if n == 1 || beta <= 0 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	norm := BesselI0(beta)
	for i := range w {
		r := 2*float64(i)/float64(n-1) - 1
		w[i] = BesselI0(beta*math.Sqrt(max(1-r*r, 0))) / norm
	}
	return w
}
