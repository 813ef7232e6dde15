package biquad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 1 kHz band at 44.1 kHz, Q 1.00, Q14.
var coefs1kHz = Coefs{A0: 1081, B1: 30288, B2: -14221}

// 100 Hz band at 44.1 kHz, Q 1.00, Q30.
var coefs100Hz = Coefs{A0: 7143424, B1: 2132981157, B2: -1059454976}

func sine(freq, rate float64, amp int16, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(float64(amp) * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}
	return out
}

func peakGain(out []int16, amp int16) float64 {
	var peak int16
	for _, v := range out[len(out)/2:] {
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	return float64(peak) / float64(amp)
}

func TestInstanceRoundTrip(t *testing.T) {
	var in Instance
	in.Init(coefs1kHz)
	assert.Equal(t, coefs1kHz, in.Coefs())
}

func TestProcessC14Impulse(t *testing.T) {
	var in Instance
	var taps Taps
	in.Init(coefs1kHz)

	src := []int16{16384, 0, 0, 0, 0, 0}
	dst := make([]int16, len(src))
	ProcessC14(&in, &taps, src, dst)
	assert.Equal(t, []int16{1081, 1998, 1674, 1360, 1061, 780}, dst)
}

func TestProcessC30Impulse(t *testing.T) {
	var in Instance
	var taps Taps
	in.Init(coefs100Hz)

	src := []int16{16384, 0, 0, 0, 0, 0}
	dst := make([]int16, len(src))
	ProcessC30(&in, &taps, src, dst)
	assert.Equal(t, []int16{109, 216, 213, 210, 207, 204}, dst)
}

func TestProcessBlockContinuity(t *testing.T) {
	var in Instance
	in.Init(coefs1kHz)

	src := sine(1000, 44100, 16383, 2048)

	var whole Taps
	ref := make([]int16, len(src))
	ProcessC14(&in, &whole, src, ref)

	var split Taps
	got := make([]int16, len(src))
	for off := 0; off < len(src); off += 100 {
		end := min(off+100, len(src))
		ProcessC14(&in, &split, src[off:end], got[off:end])
	}
	assert.Equal(t, ref, got)
	assert.Equal(t, whole, split)
}

func TestBandPassResponse(t *testing.T) {
	tests := []struct {
		name    string
		coefs   Coefs
		process func(*Instance, *Taps, []int16, []int16)
		freq    float64
		n       int
		minGain float64
		maxGain float64
	}{
		{"C14 centre", coefs1kHz, ProcessC14, 1000, 8000, 0.95, 1.05},
		{"C14 octave below", coefs1kHz, ProcessC14, 500, 8000, 0.45, 0.65},
		{"C14 octave above", coefs1kHz, ProcessC14, 2000, 8000, 0.45, 0.65},
		{"C30 centre", coefs100Hz, ProcessC30, 100, 44100, 0.95, 1.05},
		{"C30 octave below", coefs100Hz, ProcessC30, 50, 44100, 0.45, 0.65},
		{"C30 octave above", coefs100Hz, ProcessC30, 200, 44100, 0.45, 0.65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Instance
			var taps Taps
			in.Init(tt.coefs)

			src := sine(tt.freq, 44100, 16383, tt.n)
			dst := make([]int16, len(src))
			tt.process(&in, &taps, src, dst)

			g := peakGain(dst, 16383)
			assert.GreaterOrEqual(t, g, tt.minGain)
			assert.LessOrEqual(t, g, tt.maxGain)
		})
	}
}

func TestTapsClear(t *testing.T) {
	taps := Taps{1, 2, 3, 4}
	taps.Clear()
	assert.Equal(t, Taps{}, taps)
}

func BenchmarkProcessC14(b *testing.B) {
	var in Instance
	var taps Taps
	in.Init(coefs1kHz)
	src := sine(1000, 44100, 16383, 2048)
	dst := make([]int16, len(src))
	for b.Loop() {
		ProcessC14(&in, &taps, src, dst)
	}
}

func BenchmarkProcessC30(b *testing.B) {
	var in Instance
	var taps Taps
	in.Init(coefs100Hz)
	src := sine(100, 44100, 16383, 2048)
	dst := make([]int16, len(src))
	for b.Loop() {
		ProcessC30(&in, &taps, src, dst)
	}
}
