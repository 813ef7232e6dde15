package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRequirementsSizes(t *testing.T) {
	p := &InitParams{
		BufferDurationMs: 500, // 25 slots
		MaxBlockSize:     100,
		Bands:            bandsAt(100, 1000),
	}
	mem, err := MemoryRequirements(nil, p)
	require.NoError(t, err)

	// history 50->52, two band copies 12+12, gains 4, peaks 2->4, precision 2->4
	assert.Equal(t, uint32(3+52+12+12+4+4+4), mem.Regions[RegionInstance].Size)
	// two biquad instances of 12 bytes, two detector records of 8
	assert.Equal(t, uint32(3+24+16), mem.Regions[RegionPersistentCoef].Size)
	// two tap sets of 16 bytes, two detector taps of 4
	assert.Equal(t, uint32(3+32+8), mem.Regions[RegionPersistentData].Size)
	// two blocks of int16
	assert.Equal(t, uint32(3+400), mem.Regions[RegionScratch].Size)

	assert.Equal(t, PersistentSlow, mem.Regions[RegionInstance].Kind)
	assert.Equal(t, PersistentFastCoef, mem.Regions[RegionPersistentCoef].Kind)
	assert.Equal(t, PersistentFastData, mem.Regions[RegionPersistentData].Kind)
	assert.Equal(t, TemporaryFast, mem.Regions[RegionScratch].Kind)
	for _, r := range mem.Regions {
		assert.Nil(t, r.Base)
	}
}

func TestSizeThenInitSucceeds(t *testing.T) {
	tests := []struct {
		name string
		p    *InitParams
	}{
		{"defaults", DefaultInitParams()},
		{"single band minimum", &InitParams{BufferDurationMs: 1, MaxBlockSize: 1, Bands: bandsAt(1)}},
		{"maximum", &InitParams{
			BufferDurationMs: MaxBufferDuration,
			MaxBlockSize:     MaxInputBlockSize,
			Bands:            DefaultInitParams().Bands[:1],
		}},
		{"odd duration", &InitParams{BufferDurationMs: 333, MaxBlockSize: 7, Bands: bandsAt(50, 60, 70)}},
	}

	full := make([]FilterParams, MaxBands)
	for i := range full {
		full[i] = FilterParams{CenterHz: uint16(100 * (i + 1)), Q: MaxQFactor, PostGainDB: MaxPostGain}
	}
	tests = append(tests, struct {
		name string
		p    *InitParams
	}{"thirty bands", &InitParams{BufferDurationMs: 4000, MaxBlockSize: 5000, Bands: full}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem, err := MemoryRequirements(nil, tt.p)
			require.NoError(t, err)
			mem.AllocateRegions()

			for _, rate := range []SampleRate{Rate8000, Rate11025, Rate44100, Rate48000} {
				a, err := Init(tt.p, &ControlParams{Rate: rate, Speed: SpeedLow}, &mem)
				require.NoError(t, err, "rate %s", rate)
				require.NotNil(t, a)
			}
		})
	}
}

func TestMemoryRequirementsReportsLiveTable(t *testing.T) {
	p := DefaultInitParams()
	mem, err := MemoryRequirements(nil, p)
	require.NoError(t, err)
	mem.AllocateRegions()

	a, err := Init(p, &ControlParams{Rate: Rate48000, Speed: SpeedHigh}, &mem)
	require.NoError(t, err)

	got, err := MemoryRequirements(a, nil)
	require.NoError(t, err)
	assert.Equal(t, mem, got)
	assert.Equal(t, mem.TotalSize(), got.TotalSize())
}

func TestMemoryRequirementsInvalid(t *testing.T) {
	_, err := MemoryRequirements(nil, nil)
	require.ErrorIs(t, err, ErrNullAddress)

	_, err = MemoryRequirements(nil, &InitParams{BufferDurationMs: 0, MaxBlockSize: 10, Bands: bandsAt(100)})
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestLayoutRegionsAreDisjoint(t *testing.T) {
	p := &InitParams{BufferDurationMs: 60, MaxBlockSize: 8, Bands: bandsAt(200, 400)}
	a := newTestAnalyzer(t, p, Rate16000, SpeedMedium)

	for i := range a.history {
		a.history[i] = 0xAA
	}
	for i := range a.peaks {
		a.peaks[i] = 0x55
	}
	assert.Equal(t, p.Bands, a.callerBands)
	for _, v := range a.history {
		assert.Equal(t, uint8(0xAA), v)
	}
	assert.Equal(t, []uint16{2048, 2048}, a.postGain)
}

func TestRegionAndKindNames(t *testing.T) {
	assert.Equal(t, "instance", RegionInstance.String())
	assert.Equal(t, "scratch", RegionScratch.String())
	assert.Equal(t, "Region(7)", Region(7).String())
	assert.Equal(t, "persistent-fast-coef", PersistentFastCoef.String())
	assert.Equal(t, "temporary-fast", TemporaryFast.String())
	assert.Equal(t, "MemoryKind(9)", MemoryKind(9).String())
}
