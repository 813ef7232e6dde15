package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-spectrum/internal/reference"
	"github.com/tphakala/go-audio-spectrum/internal/testutil"
)

func TestLoudestBandMatchesFFT(t *testing.T) {
	freqs := []uint16{500, 1000, 4000}
	tones := []float64{500, 1000, 4000}

	ref, err := reference.New(4096, 44100)
	require.NoError(t, err)
	refBands := make([]reference.Band, len(freqs))
	for i, f := range freqs {
		refBands[i] = reference.Band{CenterHz: float64(f), Q: DefaultQFactor}
	}

	for _, tone := range tones {
		pcm := testutil.Sine(tone, 44100, 44100/2, testutil.FullScale/2)

		energies, err := ref.BandEnergies(pcm, refBands)
		require.NoError(t, err)

		p := &InitParams{BufferDurationMs: 500, MaxBlockSize: 441, Bands: bandsAt(freqs...), Spacing: SpacingCaller}
		a := newTestAnalyzer(t, p, Rate44100, SpeedMedium)
		feed(t, a, pcm, 441, 0)
		s := a.Spectrum(a.LastWriteTime())

		loudest := 0
		for i, v := range s.Levels {
			if v > s.Levels[loudest] {
				loudest = i
			}
		}
		assert.Equal(t, reference.Loudest(energies), loudest, "tone %.0f Hz", tone)
	}
}
