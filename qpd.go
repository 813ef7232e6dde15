package spectrum

import "github.com/tphakala/go-audio-spectrum/internal/fixedpoint"

// qpdStep advances one quasi-peak detector by one decimated sample and
// returns the new 15-bit envelope. Rising input follows Kp, the asymmetric
// Km term shapes attack against release.
func qpdStep(v int32, s int16, gain uint16, c qpdCoefs) int32 {
	x := (int32(s) * int32(gain)) >> qpdInShift
	x = min(fixedpoint.Abs32(x), maxLevel)

	d := int32(int16(x - v))
	acc := fixedpoint.Mul32x32Into32(d, c.Kp, qpdCoefShift)

	d = fixedpoint.Abs32(int32(int16(d >> 1)))
	acc += fixedpoint.Mul32x32Into32(d, c.Km, qpdCoefShift) + x

	return max(0, min(acc, maxLevel))
}

// slotCursor is the decimation and history bookkeeping shared by all bands
// of one block.
type slotCursor struct {
	index    int32 // next decimated sample
	count    int32 // samples since the last slot
	perSlot  int32
	writeOff int
	wrote    bool
	last     int32 // block index of the sample that filled the newest slot
}

// detect runs band b's detector over the filtered block and writes a level
// into the history each time a slot's worth of samples has passed.
func (a *Analyzer) detect(b int, filtered []int16, cur slotCursor) slotCursor {
	n := int32(len(filtered))
	coefs := a.qpd[b]
	gain := a.postGain[b]
	v := a.qpdTaps[b]
	step := a.downSampling
	base := samplesPerRefresh[a.current.Rate]
	alternate := a.current.Rate == Rate11025

	for ; cur.index < n; cur.index += step {
		v = qpdStep(v, filtered[cur.index], gain, coefs)

		cur.count += step
		if cur.count < cur.perSlot {
			continue
		}
		cur.count -= cur.perSlot
		a.history[cur.writeOff+b] = uint8(v >> qpdOutShift)
		cur.writeOff += a.nBands
		if cur.writeOff >= len(a.history) {
			cur.writeOff = 0
		}
		cur.wrote = true
		cur.last = cur.index

		// 20 ms at 11025 Hz is 220.5 samples.
		if alternate {
			if cur.perSlot == base {
				cur.perSlot = base + 1
			} else {
				cur.perSlot = base
			}
		}
	}

	a.qpdTaps[b] = v
	return cur
}
