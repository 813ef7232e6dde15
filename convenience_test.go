package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-spectrum/internal/testutil"
)

func TestNewForRate(t *testing.T) {
	a, err := NewForRate(48000, SpeedHigh, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, a.NumBands())
	assert.Equal(t, ControlParams{Rate: Rate48000, Speed: SpeedHigh}, a.ControlParams())

	_, err = NewForRate(44000, SpeedHigh, 8)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewForRate(44100, SpeedHigh, 0)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDownmixToMono(t *testing.T) {
	dst := make([]int16, 4)
	got := DownmixToMono(dst, []int16{100, 300, -100, -300, math.MaxInt16, math.MaxInt16}, 2)
	assert.Equal(t, []int16{200, -200, math.MaxInt16}, got)

	got = DownmixToMono(dst, []int16{1, 2, 3}, 1)
	assert.Equal(t, []int16{1, 2, 3}, got)
}

func TestFloatFrontEndToPCM(t *testing.T) {
	a := newTestAnalyzer(t, &InitParams{BufferDurationMs: 100, MaxBlockSize: 8, Bands: bandsAt(1000)}, Rate8000, SpeedLow)

	f64 := NewFloatFrontEnd[float64](a)
	assert.Equal(t, []int16{0, 16384, math.MaxInt16, math.MinInt16, math.MaxInt16}, f64.ToPCM([]float64{0, 0.5, 1, -1, 2}))

	f32 := NewFloatFrontEnd[float32](a)
	assert.Equal(t, []int16{-16384, math.MinInt16}, f32.ToPCM([]float32{-0.5, -3}))
}

func TestFloatFrontEndProcess(t *testing.T) {
	a := newTestAnalyzer(t, &InitParams{BufferDurationMs: 500, MaxBlockSize: 441, Bands: bandsAt(1)}, Rate44100, SpeedMedium)
	f := NewFloatFrontEnd[float64](a)

	require.ErrorIs(t, f.Process(nil, 0), ErrNullAddress)
	require.ErrorIs(t, f.Process(make([]float64, 442), 0), ErrInvalidParameter)

	tone := testutil.SineFloat(10000, 44100, 44100/5, 0.99)
	clock := NewAudioClock(Rate44100, 0)
	for off := 0; off < len(tone); off += 441 {
		require.NoError(t, f.Process(tone[off:off+441], clock.Now()))
		clock.Advance(441)
	}
	s := a.Spectrum(a.LastWriteTime())
	testutil.AssertInRange(t, s.Levels[0], 150, 255)
}
