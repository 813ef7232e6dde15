package spectrum

import "fmt"

// GetSpectrum fills levels and peaks with one value per band for the slot
// covering audio time t. Queries in the future or older than the history
// yield zeros. Peaks are held per analyzer and decay toward zero on every
// query at a new time.
func (a *Analyzer) GetSpectrum(t int32, levels, peaks []uint8) error {
	if levels == nil || peaks == nil {
		return fmt.Errorf("%w: output buffers", ErrNullAddress)
	}
	if len(levels) < a.nBands || len(peaks) < a.nBands {
		return fmt.Errorf("%w: output buffers shorter than %d bands", ErrInvalidParameter, a.nBands)
	}
	levels = levels[:a.nBands]
	peaks = peaks[:a.nBands]

	a.mu.Lock()
	defer a.mu.Unlock()

	read, ok := a.slotOffset(t)
	if !ok {
		clear(levels)
		clear(peaks)
		return nil
	}

	repeat := a.hasLastQuery && a.lastQuery == t
	for b := range a.nBands {
		level := a.history[read+b]
		p := decayPeak(a.peaks[b], level, repeat)
		a.peaks[b] = p
		levels[b] = level
		peaks[b] = p
	}
	a.lastQuery = t
	a.hasLastQuery = true
	return nil
}

// slotOffset locates the slot for t. The audio clock difference is taken
// modulo 2^32 so a stream crossing the int32 boundary keeps its ordering.
func (a *Analyzer) slotOffset(t int32) (int, bool) {
	delta := a.writeTime - t
	if delta < 0 {
		return 0, false
	}
	slots := int(refreshSlots(delta))
	if slots == 0 {
		slots = 1
	}
	if slots > a.historyLen {
		return 0, false
	}

	back := slots * a.nBands
	if back > a.writeOff {
		return a.writeOff + (a.historyLen-slots)*a.nBands, true
	}
	return a.writeOff - back, true
}

// decayPeak raises the held peak to level or lets it fall. The fall grows
// 255-peak by 0x4111/2^14, at least by one, so the peak always reaches 0.
func decayPeak(peak, level uint8, repeat bool) uint8 {
	if peak <= level {
		return level
	}
	if repeat {
		return peak
	}
	temp := int32(maxByte - peak)
	next := (temp * peakDecayFactor) >> peakDecayShift
	if next == temp {
		next++
	}
	next = min(next, maxByte)
	return uint8(maxByte - next)
}

// Snapshot is one reading of every band.
type Snapshot struct {
	Time   int32
	Levels []uint8
	Peaks  []uint8
}

// Spectrum is GetSpectrum with freshly allocated buffers.
func (a *Analyzer) Spectrum(t int32) Snapshot {
	s := Snapshot{
		Time:   t,
		Levels: make([]uint8, a.nBands),
		Peaks:  make([]uint8, a.nBands),
	}
	_ = a.GetSpectrum(t, s.Levels, s.Peaks)
	return s
}

// LastWriteTime returns the audio time stamped on the newest history slot.
// Queries later than this read as silence.
func (a *Analyzer) LastWriteTime() int32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writeTime
}
