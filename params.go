package spectrum

import "fmt"

// BandSpacing selects how band centre frequencies follow sample rate changes.
type BandSpacing uint8

const (
	// SpacingLinear spreads the bands evenly below Nyquist whenever the
	// sample rate changes. The caller's centre frequencies are kept for
	// reporting only.
	SpacingLinear BandSpacing = iota

	// SpacingCaller keeps the caller's centre frequencies. Bands at or above
	// Nyquist are left out of processing. Frequencies must be strictly
	// ascending.
	SpacingCaller
)

func (s BandSpacing) String() string {
	switch s {
	case SpacingLinear:
		return "linear"
	case SpacingCaller:
		return "caller"
	default:
		return fmt.Sprintf("BandSpacing(%d)", uint8(s))
	}
}

// FilterParams configures one band.
type FilterParams struct {
	CenterHz   uint16 // centre frequency
	Q          uint16 // quality factor x 100
	PostGainDB int16  // gain applied ahead of the level detector
}

// Validate checks the band against the supported bounds.
func (f FilterParams) Validate() error {
	if f.CenterHz == 0 || f.CenterHz > MaxCenterFrequency {
		return fmt.Errorf("%w: centre frequency %d Hz outside (0, %d]",
			ErrInvalidParameter, f.CenterHz, MaxCenterFrequency)
	}
	if f.Q < MinQFactor || f.Q > MaxQFactor {
		return fmt.Errorf("%w: Q factor %d outside [%d, %d]",
			ErrInvalidParameter, f.Q, MinQFactor, MaxQFactor)
	}
	if f.PostGainDB < MinPostGain || f.PostGainDB > MaxPostGain {
		return fmt.Errorf("%w: post gain %d dB outside [%d, %d]",
			ErrInvalidParameter, f.PostGainDB, MinPostGain, MaxPostGain)
	}
	return nil
}

// InitParams fixes the dimensions of an analyzer for its lifetime.
//
// With the default SpacingLinear the first rate change re-centres every band,
// so a single band asked for at 1 kHz ends up at Fs/4 (11025 Hz at 44.1 kHz)
// and a 1 kHz tone reads low. Set Spacing to SpacingCaller to measure at the
// frequencies given in Bands.
type InitParams struct {
	BufferDurationMs uint16 // history depth
	MaxBlockSize     uint16 // largest block accepted by Process
	Bands            []FilterParams
	Spacing          BandSpacing
}

// Validate checks every field and every band.
func (p *InitParams) Validate() error {
	if p.BufferDurationMs == 0 || p.BufferDurationMs > MaxBufferDuration {
		return fmt.Errorf("%w: buffer duration %d ms outside (0, %d]",
			ErrInvalidParameter, p.BufferDurationMs, MaxBufferDuration)
	}
	if p.MaxBlockSize == 0 || p.MaxBlockSize > MaxInputBlockSize {
		return fmt.Errorf("%w: max block size %d outside (0, %d]",
			ErrInvalidParameter, p.MaxBlockSize, MaxInputBlockSize)
	}
	if len(p.Bands) < MinBands || len(p.Bands) > MaxBands {
		return fmt.Errorf("%w: band count %d outside [%d, %d]",
			ErrInvalidParameter, len(p.Bands), MinBands, MaxBands)
	}
	if p.Spacing > SpacingCaller {
		return fmt.Errorf("%w: unknown band spacing %d", ErrInvalidParameter, p.Spacing)
	}
	for i, b := range p.Bands {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("band %d: %w", i, err)
		}
		if p.Spacing == SpacingCaller && i > 0 && b.CenterHz <= p.Bands[i-1].CenterHz {
			return fmt.Errorf("%w: band %d centre %d Hz not above band %d",
				ErrInvalidParameter, i, b.CenterHz, i-1)
		}
	}
	return nil
}

// historyLength returns the number of 20 ms slots covering the buffer
// duration, rounded up.
func (p *InitParams) historyLength() int {
	return int(refreshSlots(int32(p.BufferDurationMs)))
}

// ControlParams can change while the analyzer runs.
type ControlParams struct {
	Rate  SampleRate
	Speed DetectionSpeed
}

// Validate checks both enumerations.
func (c *ControlParams) Validate() error {
	if !c.Rate.Valid() {
		return fmt.Errorf("%w: sample rate index %d", ErrInvalidParameter, c.Rate)
	}
	if !c.Speed.Valid() {
		return fmt.Errorf("%w: detection speed index %d", ErrInvalidParameter, c.Speed)
	}
	return nil
}

// DefaultInitParams returns the layout used by the effect bundle: half a
// second of history, 2048-sample blocks and fifteen 1 kHz bands at Q 1.0.
func DefaultInitParams() *InitParams {
	return &InitParams{
		BufferDurationMs: DefaultBufferDuration,
		MaxBlockSize:     DefaultBlockSize,
		Bands:            UniformBands(DefaultBands),
	}
}

// UniformBands returns n bands at the default centre and Q. Under
// SpacingLinear the centres are replaced when a rate is applied.
func UniformBands(n int) []FilterParams {
	bands := make([]FilterParams, max(n, 0))
	for i := range bands {
		bands[i] = FilterParams{CenterHz: DefaultCenterFreq, Q: DefaultQFactor}
	}
	return bands
}

// refreshSlots converts a duration in ms into 20 ms slots, rounding up. The
// division uses the Q15 reciprocal and corrects the result when it is not
// exact.
func refreshSlots(ms int32) int32 {
	slots := int32((int64(ms) * refreshPeriodInv) >> refreshPeriodInvShift)
	if slots*RefreshPeriod != ms {
		slots++
	}
	return slots
}
