package spectrum

import "fmt"

// SetControl queues new control parameters. They take effect at the start of
// the next Process call.
func (a *Analyzer) SetControl(c *ControlParams) error {
	if c == nil {
		return fmt.Errorf("%w: control params", ErrNullAddress)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.pending = *c
	a.hasPending = true
	a.mu.Unlock()
	return nil
}

// applyPending brings the filters in line with the pending parameters. A rate
// change rebuilds every band and clears the history; a speed change only
// reloads the detector coefficients. The caller holds a.mu.
func (a *Analyzer) applyPending() {
	if !a.hasPending {
		return
	}
	next := a.pending
	a.hasPending = false

	switch {
	case next.Rate != a.current.Rate:
		a.current = next
		a.configureRate()
	case next.Speed != a.current.Speed:
		a.current = next
		a.loadQPDCoefs()
	default:
		a.current = next
	}
}

// configureRate recomputes centres, precisions and coefficients for the
// current rate and resets all stream state.
func (a *Analyzer) configureRate() {
	rate := a.current.Rate
	nyquist := uint16(rate.Hz() / 2)

	if a.spacing == SpacingLinear {
		step := nyquist / uint16(a.nBands+1)
		for i := range a.bands {
			a.bands[i].CenterHz = step * uint16(i+1)
		}
	}

	a.relevant = 0
	for i := a.nBands - 1; i >= 0; i-- {
		if a.bands[i].CenterHz < nyquist {
			a.relevant = i + 1
			break
		}
	}

	for i := range a.relevant {
		a.precision[i] = selectPrecision(rate, a.bands[i])
		a.bandPass[i].Init(deriveBandPass(a.precision[i], rate, a.bands[i]))
		a.bandPassTaps[i].Clear()
		a.qpdTaps[i] = 0
	}
	a.loadQPDCoefs()

	a.samplesPerSlot = samplesPerRefresh[rate]
	a.slotCount = 0
	a.downSampling = downSamplingFactor[rate]
	a.downSamplingCount = 0

	clear(a.history)
	clear(a.peaks)
	a.writeOff = 0
	a.hasLastQuery = false
}

func (a *Analyzer) loadQPDCoefs() {
	c := qpdTable[a.current.Speed][a.current.Rate]
	for i := range a.relevant {
		a.qpd[i] = c
	}
}

// selectPrecision picks double precision for bands low enough that the
// single precision cosine loses the passband: up to Fs/110, or below Fs/85
// when Q is above 3.
func selectPrecision(rate SampleRate, band FilterParams) Precision {
	fc := int64(band.CenterHz)
	fs := int64(rate.Hz())
	switch {
	case fc*lowFreqDivisor <= fs:
		return PrecisionDouble
	case fc*highFreqDivisor < fs && band.Q > highQ:
		return PrecisionDouble
	default:
		return PrecisionSingle
	}
}

// BandCenters returns the centre frequency each band is currently tuned to.
func (a *Analyzer) BandCenters() []uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]uint16, a.nBands)
	for i, b := range a.bands {
		out[i] = b.CenterHz
	}
	return out
}

// RelevantBands returns how many bands, counted from the lowest, lie below
// the current Nyquist frequency and are processed.
func (a *Analyzer) RelevantBands() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.relevant
}

// Precisions returns the filter precision of every relevant band.
func (a *Analyzer) Precisions() []Precision {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Precision, a.relevant)
	copy(out, a.precision)
	return out
}
