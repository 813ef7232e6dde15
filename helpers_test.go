package spectrum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-spectrum/internal/biquad"
	"github.com/tphakala/go-audio-spectrum/internal/testutil"
)

func bandsAt(freqs ...uint16) []FilterParams {
	out := make([]FilterParams, len(freqs))
	for i, f := range freqs {
		out[i] = FilterParams{CenterHz: f, Q: DefaultQFactor}
	}
	return out
}

func newTestAnalyzer(t *testing.T, p *InitParams, rate SampleRate, speed DetectionSpeed) *Analyzer {
	t.Helper()
	a, err := New(p, &ControlParams{Rate: rate, Speed: speed})
	require.NoError(t, err)
	return a
}

// feed processes s in blocks of size, advancing the audio time by the block
// duration from start. It returns the time after the last block.
func feed(t *testing.T, a *Analyzer, s []int16, size int, start int32) int32 {
	t.Helper()
	clock := NewAudioClock(a.ControlParams().Rate, start)
	for _, block := range testutil.Blocks(s, size) {
		require.NoError(t, a.Process(block, clock.Now()))
		clock.Advance(len(block))
	}
	return clock.Now()
}

// pushSlot writes one level per band into the next history slot and stamps
// it with t.
func (a *Analyzer) pushSlot(levels []uint8, t int32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	copy(a.history[a.writeOff:a.writeOff+a.nBands], levels)
	a.writeOff += a.nBands
	if a.writeOff >= len(a.history) {
		a.writeOff = 0
	}
	a.writeTime = t
}

func (a *Analyzer) bandPassCoefs() []biquad.Coefs {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]biquad.Coefs, a.relevant)
	for i := range out {
		out[i] = a.bandPass[i].Coefs()
	}
	return out
}
