// Package testutil provides reusable signal generators and assertions for
// analyzer tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FullScale is the amplitude of a full-scale 16-bit sine.
const FullScale = math.MaxInt16

// Sine returns n samples of a sine at freq Hz, truncated toward zero.
func Sine(freq float64, rate, n int, amplitude int16) []int16 {
	out := make([]int16, n)
	w := 2 * math.Pi * freq / float64(rate)
	for i := range out {
		out[i] = int16(float64(amplitude) * math.Sin(w*float64(i)))
	}
	return out
}

// SineFloat returns n float samples of a sine at freq Hz with peak amplitude.
func SineFloat(freq float64, rate, n int, amplitude float64) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / float64(rate)
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// Silence returns n zero samples.
func Silence(n int) []int16 {
	return make([]int16, n)
}

// Blocks splits s into consecutive blocks of at most size samples.
func Blocks(s []int16, size int) [][]int16 {
	var out [][]int16
	for off := 0; off < len(s); off += size {
		out = append(out, s[off:min(off+size, len(s))])
	}
	return out
}

// AssertAllZero verifies every byte of s is zero.
func AssertAllZero(t *testing.T, s []uint8, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "value not zero",
				"s[%d]=%d, want 0", i, v)
		}
	}
	return true
}

// AssertStrictlyIncreasing verifies s[i] > s[i-1] for every i.
func AssertStrictlyIncreasing(t *testing.T, s []uint16, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return assert.Fail(t, "not strictly increasing",
				"s[%d]=%d <= s[%d]=%d", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertAllBelow verifies every element of s is below limit.
func AssertAllBelow(t *testing.T, s []uint16, limit uint16, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v >= limit {
			return assert.Fail(t, "value not below limit",
				"s[%d]=%d >= %d", i, v, limit)
		}
	}
	return true
}

// AssertAtLeast verifies every peaks[i] >= levels[i].
func AssertAtLeast(t *testing.T, peaks, levels []uint8, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, peaks, len(levels), msgAndArgs...) {
		return false
	}
	for i := range levels {
		if peaks[i] < levels[i] {
			return assert.Fail(t, "peak below level",
				"peaks[%d]=%d < levels[%d]=%d", i, peaks[i], i, levels[i])
		}
	}
	return true
}

// AssertInRange verifies that a value is within [minVal, maxVal].
func AssertInRange[T ~int | ~int32 | ~uint8 | ~float64](t *testing.T, value, minVal, maxVal T, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %v is outside range [%v, %v]", value, minVal, maxVal)
	}
	return true
}
