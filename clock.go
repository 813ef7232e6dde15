package spectrum

// AudioClock turns consumed sample counts into the millisecond audio time
// expected by Process. The time wraps through the int32 range; fractions of
// a millisecond carry over between calls.
type AudioClock struct {
	hz   int64
	ms   int32
	frac int64 // sample-milliseconds below one whole ms
}

// NewAudioClock starts a clock at start ms for the given rate.
func NewAudioClock(rate SampleRate, start int32) *AudioClock {
	return &AudioClock{hz: int64(rate.Hz()), ms: start}
}

// Now returns the time of the next sample.
func (c *AudioClock) Now() int32 { return c.ms }

// Advance moves the clock past n samples and returns the new time.
func (c *AudioClock) Advance(n int) int32 {
	if c.hz == 0 || n <= 0 {
		return c.ms
	}
	total := c.frac + int64(n)*msPerSecond
	c.ms += int32(total / c.hz)
	c.frac = total % c.hz
	return c.ms
}

// SetRate switches the clock to a new rate without moving it.
func (c *AudioClock) SetRate(rate SampleRate) {
	c.hz = int64(rate.Hz())
	c.frac = 0
}

// Reset moves the clock to t.
func (c *AudioClock) Reset(t int32) {
	c.ms = t
	c.frac = 0
}
