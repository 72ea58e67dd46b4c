package buf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSequentialReads(t *testing.T) {
	data := []byte{
		0xFE, 0xFF, // u16
		0x01, 0x00, 0x00, 0x00, // u32
		0xAA,                                           // u8
		0x00,                                           // padding to 8
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // u64
	}
	c := NewCursor(data, 0)
	assert.Equal(t, uint16(0xFFFE), c.U16())
	assert.Equal(t, uint32(1), c.U32())
	assert.Equal(t, uint8(0xAA), c.U8())
	c.Align(4)
	assert.Equal(t, 8, c.Offset())
	assert.Equal(t, uint64(0x0102030405060708), c.U64())
	require.NoError(t, c.Err())
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorLatchesShortRead(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3}, 0)
	assert.Equal(t, uint16(0x0201), c.U16())
	assert.Zero(t, c.U32())
	require.ErrorIs(t, c.Err(), ErrShort)

	// Every later read stays zero.
	assert.Zero(t, c.U8())
	assert.Nil(t, c.Bytes(1))
}

func TestCursorBadStart(t *testing.T) {
	c := NewCursor([]byte{1}, 5)
	require.ErrorIs(t, c.Err(), ErrShort)
}

func TestCursorAlignClampsAtEnd(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4, 5, 6}, 0)
	c.Skip(5)
	c.Align(4)
	require.NoError(t, c.Err())
	assert.Equal(t, 6, c.Offset())
}
