package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-spectrum/internal/testutil"
)

func TestStreamerMatchesBlockProcessing(t *testing.T) {
	p := &InitParams{BufferDurationMs: 500, MaxBlockSize: 512, Bands: bandsAt(1, 2, 3, 4)}
	signal := testutil.Sine(1500, 16000, 16000, testutil.FullScale)

	direct := newTestAnalyzer(t, p, Rate16000, SpeedMedium)
	feed(t, direct, signal, 512, 0)

	streamed := newTestAnalyzer(t, p, Rate16000, SpeedMedium)
	s := NewStreamer(streamed, 0)
	for _, chunk := range testutil.Blocks(signal, 300) {
		require.NoError(t, s.Write(chunk))
	}
	require.NoError(t, s.Flush())

	assert.Equal(t, direct.history, streamed.history)
	assert.Equal(t, direct.LastWriteTime(), streamed.LastWriteTime())
	assert.Equal(t, int32(1000), s.Now())
	assert.Same(t, streamed, s.Analyzer())
}

func TestStreamerFollowsRateChange(t *testing.T) {
	a := newTestAnalyzer(t, DefaultInitParams(), Rate8000, SpeedLow)
	s := NewStreamer(a, 0)
	require.NoError(t, s.Write(make([]int16, 8000)))
	require.NoError(t, s.Flush())
	assert.Equal(t, int32(1000), s.Now())

	require.NoError(t, a.SetControl(&ControlParams{Rate: Rate16000, Speed: SpeedLow}))
	require.NoError(t, s.Write(make([]int16, 16000)))
	require.NoError(t, s.Flush())
	assert.Equal(t, int32(2000), s.Now())
	assert.Equal(t, Rate16000, a.ControlParams().Rate)
}
