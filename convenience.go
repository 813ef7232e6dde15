package spectrum

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-spectrum/internal/simdops"
)

// NewForRate builds a heap-backed analyzer with nBands evenly spaced bands at
// Q 1.0 for a rate given in hertz.
func NewForRate(hz int, speed DetectionSpeed, nBands int) (*Analyzer, error) {
	rate, err := SampleRateFromHz(hz)
	if err != nil {
		return nil, err
	}
	p := DefaultInitParams()
	if nBands < MinBands || nBands > MaxBands {
		return nil, fmt.Errorf("%w: band count %d outside [%d, %d]",
			ErrInvalidParameter, nBands, MinBands, MaxBands)
	}
	p.Bands = UniformBands(nBands)
	return New(p, &ControlParams{Rate: rate, Speed: speed})
}

// DownmixToMono averages interleaved frames of the given channel count into
// dst, which must hold len(interleaved)/channels samples. It returns the
// filled part of dst.
func DownmixToMono(dst, interleaved []int16, channels int) []int16 {
	if channels <= 1 {
		n := copy(dst, interleaved)
		return dst[:n]
	}
	frames := min(len(interleaved)/channels, len(dst))
	for i := range frames {
		var sum int32
		for _, s := range interleaved[i*channels : (i+1)*channels] {
			sum += int32(s)
		}
		dst[i] = int16(sum / int32(channels))
	}
	return dst[:frames]
}

// FloatFrontEnd feeds float samples in [-1, 1) to an analyzer. It owns the
// conversion buffers, so Process does not allocate.
type FloatFrontEnd[F simdops.Float] struct {
	a      *Analyzer
	ops    *simdops.Ops[F]
	scaled []F
	pcm    []int16
}

// NewFloatFrontEnd sizes the conversion buffers for a's largest block.
func NewFloatFrontEnd[F simdops.Float](a *Analyzer) *FloatFrontEnd[F] {
	return &FloatFrontEnd[F]{
		a:      a,
		ops:    simdops.For[F](),
		scaled: make([]F, a.maxBlockSize),
		pcm:    make([]int16, a.maxBlockSize),
	}
}

// Process converts in to 16-bit PCM with saturation and analyzes it.
func (f *FloatFrontEnd[F]) Process(in []F, audioTime int32) error {
	if in == nil {
		return fmt.Errorf("%w: input block", ErrNullAddress)
	}
	if len(in) == 0 || len(in) > len(f.pcm) {
		return fmt.Errorf("%w: block size %d outside (0, %d]", ErrInvalidParameter, len(in), len(f.pcm))
	}
	pcm := f.ToPCM(in)
	return f.a.Process(pcm, audioTime)
}

// ToPCM converts in into the front end's PCM buffer and returns it. The
// result is overwritten by the next call.
func (f *FloatFrontEnd[F]) ToPCM(in []F) []int16 {
	n := min(len(in), len(f.pcm))
	scaled := f.scaled[:n]
	f.ops.Scale(scaled, in[:n], -math.MinInt16)
	for i, v := range scaled {
		switch {
		case v >= math.MaxInt16:
			f.pcm[i] = math.MaxInt16
		case v <= math.MinInt16:
			f.pcm[i] = math.MinInt16
		default:
			f.pcm[i] = int16(v)
		}
	}
	return f.pcm[:n]
}
