// Package pipeline buffers PCM between a producer with arbitrary write sizes
// and an analyzer that consumes bounded blocks.
package pipeline

import "sync"

const bufferGrowthFactor = 2

// RingBuffer is a growable circular buffer of 16-bit samples.
type RingBuffer struct {
	data     []int16
	capacity int
	size     int
	readPos  int
	writePos int
	mu       sync.Mutex
}

// NewRingBuffer creates a ring buffer with the given initial capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		data:     make([]int16, capacity),
		capacity: capacity,
	}
}

// Write appends samples, growing the buffer when needed.
func (b *RingBuffer) Write(samples []int16) {
	b.mu.Lock()
	defer b.mu.Unlock()

	needed := len(samples)
	if needed == 0 {
		return
	}
	if b.size+needed > b.capacity {
		b.grow(b.size + needed)
	}

	// Up to two contiguous copies
	n := copy(b.data[b.writePos:], samples)
	copy(b.data, samples[n:])
	b.writePos = (b.writePos + needed) % b.capacity
	b.size += needed
}

// ReadInto moves up to len(dst) samples into dst and returns the count.
// Zero-alloc.
func (b *RingBuffer) ReadInto(dst []int16) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := min(len(dst), b.size)
	if n == 0 {
		return 0
	}
	first := min(n, b.capacity-b.readPos)
	copy(dst, b.data[b.readPos:b.readPos+first])
	copy(dst[first:n], b.data[:n-first])

	b.readPos = (b.readPos + n) % b.capacity
	b.size -= n
	return n
}

// Available returns the number of buffered samples.
func (b *RingBuffer) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// grow increases the capacity to at least minCapacity, keeping sample order.
func (b *RingBuffer) grow(minCapacity int) {
	newCapacity := b.capacity
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}
	newData := make([]int16, newCapacity)

	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(newData, b.data[b.readPos:b.writePos])
		} else {
			n1 := copy(newData, b.data[b.readPos:])
			copy(newData[n1:], b.data[:b.writePos])
		}
	}

	b.data = newData
	b.capacity = newCapacity
	b.readPos = 0
	b.writePos = b.size
}
