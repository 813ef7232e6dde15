package spectrum

import (
	"fmt"

	"github.com/tphakala/go-audio-spectrum/internal/biquad"
	"github.com/tphakala/go-audio-spectrum/internal/fixedpoint"
)

// Process analyzes one block of mono samples. audioTime is the time of the
// first sample of the block in ms; it may wrap through the int32 range.
// Pending control parameters are applied before the block is filtered.
func (a *Analyzer) Process(in []int16, audioTime int32) error {
	if in == nil {
		return fmt.Errorf("%w: input block", ErrNullAddress)
	}
	n := len(in)
	if n == 0 || n > a.maxBlockSize {
		return fmt.Errorf("%w: block size %d outside (0, %d]", ErrInvalidParameter, n, a.maxBlockSize)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.applyPending()

	src := a.scratch[:n]
	filtered := a.scratch[n : 2*n]
	fixedpoint.ShiftSat16(src, in, inputShift)

	start := slotCursor{
		index:    a.downSamplingCount,
		count:    a.slotCount,
		perSlot:  a.samplesPerSlot,
		writeOff: a.writeOff,
	}

	for b := range a.relevant {
		switch a.precision[b] {
		case PrecisionDouble:
			biquad.ProcessC30(&a.bandPass[b], &a.bandPassTaps[b], src, filtered)
		default:
			biquad.ProcessC14(&a.bandPass[b], &a.bandPassTaps[b], src, filtered)
		}

		end := a.detect(b, filtered, start)
		if b < a.relevant-1 {
			continue
		}

		a.downSamplingCount = end.index - int32(n)
		a.slotCount = end.count
		a.samplesPerSlot = end.perSlot
		a.writeOff = end.writeOff
		if end.wrote {
			offset := fixedpoint.Mul32x32Into32(end.last*msPerSecond, sampleRateInv[a.current.Rate], fsInvShift)
			a.writeTime = audioTime + offset
		}
	}
	return nil
}
