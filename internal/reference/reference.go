// Package reference computes band energies with a Kaiser-windowed FFT. It is the
// floating-point yardstick the fixed-point analyzer is checked against.
package reference

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-audio-spectrum/internal/mathutil"
	"github.com/tphakala/go-audio-spectrum/internal/simdops"
)

// Sidelobe attenuation of the analysis window
const windowAttenuationDB = 90

// ErrShortInput is returned when fewer samples than the FFT size are given.
var ErrShortInput = errors.New("reference: input shorter than FFT size")

// Band describes one analysis band. Q is in hundredths, so 100 is Q 1.0.
type Band struct {
	CenterHz float64
	Q        float64
}

// Analyzer holds the FFT plan and scratch buffers for one FFT size.
type Analyzer struct {
	size   int
	rate   float64
	fft    *fourier.FFT
	window []float64
	frame  []float64
	coeffs []complex128
	re, im []float64
	power  []float64
}

// New returns an analyzer for frames of size samples at rate Hz.
func New(size, rate int) (*Analyzer, error) {
	if size < 2 || rate <= 0 {
		return nil, fmt.Errorf("reference: invalid size %d or rate %d", size, rate)
	}
	bins := size/2 + 1
	a := &Analyzer{
		size:   size,
		rate:   float64(rate),
		fft:    fourier.NewFFT(size),
		window: mathutil.KaiserWindow(size, mathutil.KaiserBeta(windowAttenuationDB)),
		frame:  make([]float64, size),
		coeffs: make([]complex128, bins),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
		power:  make([]float64, bins),
	}
	return a, nil
}

// Size returns the FFT length.
func (a *Analyzer) Size() int { return a.size }

// BandEnergies windows the last Size() samples of pcm and returns, per band,
// the FFT power summed over the bins inside centre ± centre/(2Q).
func (a *Analyzer) BandEnergies(pcm []int16, bands []Band) ([]float64, error) {
	if len(pcm) < a.size {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortInput, len(pcm), a.size)
	}
	a.transform(pcm)

	ops := simdops.Float64Ops()
	out := make([]float64, len(bands))
	for i, b := range bands {
		lo, hi := a.binRange(b)
		if lo > hi {
			continue
		}
		out[i] = ops.Sum(a.power[lo : hi+1])
	}
	return out, nil
}

// NearestEnergies assigns every FFT bin to the closest of the ascending
// centres and returns the power collected per centre. Bins further than half
// a spacing outside the first or last centre are ignored.
func (a *Analyzer) NearestEnergies(pcm []int16, centers []float64) ([]float64, error) {
	if len(pcm) < a.size {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortInput, len(pcm), a.size)
	}
	out := make([]float64, len(centers))
	if len(centers) == 0 {
		return out, nil
	}
	a.transform(pcm)

	lo, hi := centers[0], centers[len(centers)-1]
	if len(centers) > 1 {
		lo -= (centers[1] - centers[0]) / 2
		hi += (centers[len(centers)-1] - centers[len(centers)-2]) / 2
	}
	hz := a.rate / float64(a.size)
	band := 0
	for k, p := range a.power {
		f := float64(k) * hz
		if f < lo || f > hi {
			continue
		}
		for band+1 < len(centers) && f-centers[band] > centers[band+1]-f {
			band++
		}
		out[band] += p
	}
	return out, nil
}

// transform windows the last Size() samples of pcm and leaves the bin power
// in a.power.
func (a *Analyzer) transform(pcm []int16) {
	for i, s := range pcm[len(pcm)-a.size:] {
		a.frame[i] = float64(s) / -math.MinInt16
	}
	vecmath.MulBlockInPlace(a.frame, a.window)

	a.fft.Coefficients(a.coeffs, a.frame)
	for i, c := range a.coeffs {
		a.re[i] = real(c)
		a.im[i] = imag(c)
	}
	vecmath.Power(a.power, a.re, a.im)
}

func (a *Analyzer) binRange(b Band) (lo, hi int) {
	q := b.Q / 100
	if q <= 0 {
		q = 1
	}
	half := b.CenterHz / (2 * q)
	hz := a.rate / float64(a.size)
	lo = max(int(math.Ceil((b.CenterHz-half)/hz)), 0)
	hi = min(int(math.Floor((b.CenterHz+half)/hz)), len(a.power)-1)
	return lo, hi
}

// FrameEnergy returns the mean squared value of the last Size() samples,
// scaled to full scale 1.0.
func (a *Analyzer) FrameEnergy(pcm []int16) (float64, error) {
	if len(pcm) < a.size {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrShortInput, len(pcm), a.size)
	}
	for i, s := range pcm[len(pcm)-a.size:] {
		a.frame[i] = float64(s) / -math.MinInt16
	}
	return simdops.Energy(a.frame) / float64(a.size), nil
}

// Loudest returns the index of the largest value in e, or -1 when e is
// empty or all zero.
func Loudest(e []float64) int {
	best, idx := 0.0, -1
	for i, v := range e {
		if v > best {
			best, idx = v, i
		}
	}
	return idx
}
