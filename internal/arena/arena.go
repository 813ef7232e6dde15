// Package arena carves fixed-size members out of caller-owned memory.
//
// A Cursor is used twice with the same sequence of AddMember calls: once
// without a base to measure a region, then once over the real region to hand
// out the members. Both passes round every member up to a 4-byte multiple so
// the offsets match exactly.
package arena

import "unsafe"

const (
	// Alignment is the granularity of every member and of the region base.
	Alignment = 4

	// sentinelTotal is the initial total of a cursor. It doubles as the slack
	// needed to align an arbitrary base address to Alignment.
	sentinelTotal = Alignment - 1
)

// Cursor tracks the next free byte of a region and the running size total.
type Cursor struct {
	base     []byte
	next     uintptr
	total    uint32
	overflow bool
}

// Init resets the cursor over base. A nil base starts a sizing pass in which
// AddMember only accumulates sizes.
func (c *Cursor) Init(base []byte) {
	c.base = base
	c.next = 0
	c.total = sentinelTotal
	c.overflow = false
	if len(base) > 0 {
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(base)))
		c.next = alignUp(addr) - addr
	}
}

// AddMember reserves size bytes, rounded up to Alignment. It returns nil during
// a sizing pass and when the region is exhausted.
func (c *Cursor) AddMember(size uint32) []byte {
	size = uint32(alignUp(uintptr(size)))
	c.total += size
	if c.base == nil {
		return nil
	}
	end := c.next + uintptr(size)
	if end > uintptr(len(c.base)) {
		c.overflow = true
		return nil
	}
	m := c.base[c.next:end:end]
	c.next = end
	return m
}

// Total returns the bytes required for everything added so far, including the
// alignment slack, or 0 when nothing has been added.
func (c *Cursor) Total() uint32 {
	if c.total == sentinelTotal {
		return 0
	}
	return c.total
}

// Overflowed reports whether a member did not fit in the backing region.
func (c *Cursor) Overflowed() bool { return c.overflow }

// Slice reserves room for n values of T and returns them as a typed slice
// aliasing the region. T must be free of pointers and need no more than
// Alignment bytes of alignment. During a sizing pass, or for n == 0, the
// result is nil.
func Slice[T any](c *Cursor, n int) []T {
	var zero T
	b := c.AddMember(uint32(uintptr(n) * unsafe.Sizeof(zero)))
	if n == 0 || len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

func alignUp(v uintptr) uintptr {
	return (v + Alignment - 1) &^ (Alignment - 1)
}
