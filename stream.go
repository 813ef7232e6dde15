package spectrum

import "github.com/tphakala/go-audio-spectrum/internal/pipeline"

// Streamer accepts writes of any length, cuts them into blocks no larger
// than the analyzer's maximum and stamps each block with an AudioClock.
type Streamer struct {
	a     *Analyzer
	clock *AudioClock
	buf   *pipeline.RingBuffer
	block []int16
	rate  SampleRate
}

// NewStreamer starts a stream at audio time start.
func NewStreamer(a *Analyzer, start int32) *Streamer {
	rate := a.ControlParams().Rate
	return &Streamer{
		a:     a,
		clock: NewAudioClock(rate, start),
		buf:   pipeline.NewRingBuffer(2 * a.maxBlockSize),
		block: make([]int16, a.maxBlockSize),
		rate:  rate,
	}
}

// Write buffers samples and processes every full block.
func (s *Streamer) Write(samples []int16) error {
	s.buf.Write(samples)
	for s.buf.Available() >= len(s.block) {
		if err := s.processNext(len(s.block)); err != nil {
			return err
		}
	}
	return nil
}

// Flush processes whatever is buffered as a final short block.
func (s *Streamer) Flush() error {
	if n := s.buf.Available(); n > 0 {
		return s.processNext(n)
	}
	return nil
}

// Now returns the audio time of the next unprocessed sample.
func (s *Streamer) Now() int32 { return s.clock.Now() }

// Analyzer returns the analyzer the stream feeds.
func (s *Streamer) Analyzer() *Analyzer { return s.a }

func (s *Streamer) processNext(n int) error {
	if rate := s.a.ControlParams().Rate; rate != s.rate {
		s.rate = rate
		s.clock.SetRate(rate)
	}
	block := s.block[:s.buf.ReadInto(s.block[:n])]
	if err := s.a.Process(block, s.clock.Now()); err != nil {
		return err
	}
	s.clock.Advance(len(block))
	return nil
}
