package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSizingPass(t *testing.T) {
	var c Cursor
	c.Init(nil)
	assert.Equal(t, uint32(0), c.Total())
	assert.Nil(t, c.AddMember(8), "sizing pass hands out nothing")
	assert.Equal(t, uint32(3+8), c.Total())
}

func TestCursorRoundsMembers(t *testing.T) {
	tests := []struct {
		name  string
		sizes []uint32
		want  uint32
	}{
		{"single byte", []uint32{1}, 3 + 4},
		{"exact multiple", []uint32{8}, 3 + 8},
		{"mixed", []uint32{1, 2, 5, 12}, 3 + 4 + 4 + 8 + 12},
		{"zero sized member", []uint32{0, 4}, 3 + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cursor
			c.Init(nil)
			for _, s := range tt.sizes {
				assert.Nil(t, c.AddMember(s))
			}
			assert.Equal(t, tt.want, c.Total())
		})
	}
}

func TestCursorCarvesAlignedMembers(t *testing.T) {
	var sizing Cursor
	sizing.Init(nil)
	sizing.AddMember(6)
	sizing.AddMember(3)
	total := sizing.Total()

	// Offset the region by one byte to force base alignment.
	backing := make([]byte, total+1)
	region := backing[1:]

	var c Cursor
	c.Init(region)
	a := c.AddMember(6)
	b := c.AddMember(3)
	require.Len(t, a, 8)
	require.Len(t, b, 4)
	assert.False(t, c.Overflowed())
	assert.Equal(t, total, c.Total())

	a[7] = 0xAA
	assert.Equal(t, byte(0), b[0], "members must not overlap")
}

func TestCursorOverflow(t *testing.T) {
	var c Cursor
	c.Init(make([]byte, 8))
	assert.NotNil(t, c.AddMember(4))
	assert.Nil(t, c.AddMember(16))
	assert.True(t, c.Overflowed())
}

func TestSliceTyped(t *testing.T) {
	type pair struct{ A, B int32 }

	var sizing Cursor
	sizing.Init(nil)
	assert.Nil(t, Slice[pair](&sizing, 3))
	assert.Nil(t, Slice[uint16](&sizing, 5))
	total := sizing.Total()
	assert.Equal(t, uint32(3+24+12), total)

	var c Cursor
	c.Init(make([]byte, total))
	pairs := Slice[pair](&c, 3)
	shorts := Slice[uint16](&c, 5)
	require.Len(t, pairs, 3)
	require.Len(t, shorts, 5)

	pairs[2] = pair{A: -1, B: 7}
	shorts[0] = 42
	assert.Equal(t, int32(7), pairs[2].B)
	assert.Equal(t, uint16(42), shorts[0])
	assert.Nil(t, Slice[uint8](&c, 0))
}
