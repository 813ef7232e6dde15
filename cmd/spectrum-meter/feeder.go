package main

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	spectrum "github.com/tphakala/go-audio-spectrum"
	"github.com/tphakala/go-audio-spectrum/internal/audiofile"
)

// feeder plays a decoded file into a Streamer at the file's own pace, the
// way an audio device would consume it.
type feeder struct {
	src    audiofile.Source
	stream *spectrum.Streamer
	period time.Duration
	chunk  int

	consumed atomic.Int64
	paused   atomic.Bool

	done chan struct{}
	once sync.Once
	err  error
}

func newFeeder(src audiofile.Source, a *spectrum.Analyzer, period time.Duration) *feeder {
	chunk := max(int(int64(src.SampleRate())*int64(period)/int64(time.Second)), 1)
	return &feeder{
		src:    src,
		stream: spectrum.NewStreamer(a, 0),
		period: period,
		chunk:  chunk,
		done:   make(chan struct{}),
	}
}

// run pushes one chunk per period until the file ends or ctx is cancelled.
func (f *feeder) run(ctx context.Context) {
	ticker := time.NewTicker(f.period)
	defer ticker.Stop()

	buf := make([]int16, f.chunk)
	for {
		select {
		case <-ctx.Done():
			f.finish(nil)
			return
		case <-ticker.C:
		}
		if f.paused.Load() {
			continue
		}
		eof, err := f.step(buf)
		if err != nil || eof {
			f.finish(err)
			return
		}
	}
}

// step reads and analyzes one chunk. It reports true once the source is
// exhausted and the stream flushed.
func (f *feeder) step(buf []int16) (bool, error) {
	n, err := f.src.ReadMono(buf)
	if n > 0 {
		if werr := f.stream.Write(buf[:n]); werr != nil {
			return false, werr
		}
		f.consumed.Add(int64(n))
	}
	if errors.Is(err, io.EOF) {
		return true, f.stream.Flush()
	}
	return false, err
}

func (f *feeder) finish(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed when playback stops.
func (f *feeder) Done() <-chan struct{} { return f.done }

// Err reports why playback stopped. Only valid after Done is closed.
func (f *feeder) Err() error { return f.err }

// TogglePause pauses or resumes the feed.
func (f *feeder) TogglePause() { f.paused.Store(!f.paused.Load()) }

// Paused reports whether the feed is paused.
func (f *feeder) Paused() bool { return f.paused.Load() }

// Progress returns the fraction of the file played, or 0 when the length
// is unknown.
func (f *feeder) Progress() float64 {
	total := f.src.Frames()
	if total <= 0 {
		return 0
	}
	return min(float64(f.consumed.Load())/float64(total), 1)
}

// Position returns the time played so far.
func (f *feeder) Position() time.Duration {
	rate := f.src.SampleRate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(f.consumed.Load()) * time.Second / time.Duration(rate)
}
