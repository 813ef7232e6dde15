package main

import (
	"fmt"
	"strings"

	spectrum "github.com/tphakala/go-audio-spectrum"
)

// levelGlyphs maps a level byte to a bar height, quietest first.
var levelGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// frame is one printed line of analyzer output.
type frame struct {
	snap    spectrum.Snapshot
	centers []uint16
	refBand int
}

func newFrame(s spectrum.Snapshot, centers []uint16) frame {
	return frame{snap: s, centers: centers, refBand: -1}
}

// loudest returns the index of the band with the highest level, or -1 when
// every band is silent.
func (f frame) loudest() int {
	idx := -1
	var best uint8
	for i, v := range f.snap.Levels {
		if v > best {
			best, idx = v, i
		}
	}
	return idx
}

func glyph(level uint8) rune {
	return levelGlyphs[int(level)*(len(levelGlyphs)-1)/255]
}

func (f frame) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%8d ms |", f.snap.Time)
	for _, v := range f.snap.Levels {
		b.WriteRune(glyph(v))
	}
	b.WriteString("| ")

	if i := f.loudest(); i >= 0 {
		fmt.Fprintf(&b, "loudest %d Hz (%d, peak %d)", f.centers[i], f.snap.Levels[i], f.snap.Peaks[i])
	} else {
		b.WriteString("silent")
	}
	if f.refBand >= 0 {
		fmt.Fprintf(&b, " fft %d Hz", f.centers[f.refBand])
	}
	return b.String()
}
