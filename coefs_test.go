package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-spectrum/internal/biquad"
)

func TestDeriveBandPassExact(t *testing.T) {
	tests := []struct {
		name string
		prec Precision
		fc   uint16
		want biquad.Coefs
	}{
		{"single 1 kHz", PrecisionSingle, 1000, biquad.Coefs{A0: 1081, B1: 30288, B2: -14221}},
		{"double 100 Hz", PrecisionDouble, 100, biquad.Coefs{A0: 7143424, B1: 2132981157, B2: -1059454976}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveBandPass(tt.prec, Rate44100, FilterParams{CenterHz: tt.fc, Q: 100})
			assert.Equal(t, tt.want, got)
		})
	}
}

// Compare the fixed-point records against the ideal band-pass with
// b1 = (1-b2)*cos(w) to within the formats' resolution.
func TestDeriveBandPassTracksCosine(t *testing.T) {
	for rate := Rate8000; rate <= Rate48000; rate++ {
		fs := float64(rate.Hz())
		for _, fc := range []uint16{200, 500, 1000, 2000} {
			band := FilterParams{CenterHz: fc, Q: 100}
			c := deriveBandPass(PrecisionSingle, rate, band)

			w := 2 * math.Pi * float64(fc) / fs
			b2 := float64(c.B2) / (1 << 14)
			b1 := float64(c.B1) / (1 << 14)
			want := (1 - b2) * math.Cos(w)
			assert.InDelta(t, want, b1, 0.01, "rate %s fc %d", rate, fc)
			assert.Less(t, c.B2, int32(0))
		}
	}
}

func TestDoublePrecisionBeatsSingleAtLowFrequency(t *testing.T) {
	band := FilterParams{CenterHz: 60, Q: 100}
	w := 2 * math.Pi * 60 / 48000

	single := deriveBandPass(PrecisionSingle, Rate48000, band)
	double := deriveBandPass(PrecisionDouble, Rate48000, band)

	singleB2 := float64(single.B2) / (1 << 14)
	doubleB2 := float64(double.B2) / (1 << 30)
	singleErr := math.Abs(float64(single.B1)/(1<<14) - (1-singleB2)*math.Cos(w))
	doubleErr := math.Abs(float64(double.B1)/(1<<30) - (1-doubleB2)*math.Cos(w))
	assert.Less(t, doubleErr, singleErr)
	assert.Less(t, doubleErr, 1e-4)
}
