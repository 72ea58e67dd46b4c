// Package buf contains bounds-checked helpers for decoding little-endian structures.
package buf

import (
	"encoding/binary"
	"errors"
)

// ErrShort is returned by Cursor once a read runs past the end of its buffer.
var ErrShort = errors.New("buf: read past end of buffer")

// Cursor reads sequential little-endian fields from a byte slice. The first
// out-of-bounds read latches ErrShort; later reads return zero values, so a
// decoder can read a whole record and check Err once.
type Cursor struct {
	b   []byte
	off int
	err error
}

// NewCursor returns a cursor over b positioned at off.
func NewCursor(b []byte, off int) *Cursor {
	c := &Cursor{b: b, off: off}
	if off < 0 || off > len(b) {
		c.err = ErrShort
	}
	return c
}

// Offset returns the current position relative to the start of the buffer.
func (c *Cursor) Offset() int { return c.off }

// Err returns the latched error, if any.
func (c *Cursor) Err() error { return c.err }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.err != nil {
		return 0
	}
	return len(c.b) - c.off
}

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	s, ok := Slice(c.b, c.off, n)
	if !ok {
		c.err = ErrShort
		return nil
	}
	c.off += n
	return s
}

// Skip advances by n bytes.
func (c *Cursor) Skip(n int) {
	c.Bytes(n)
}

// Align advances to the next multiple of n (relative to the buffer start).
// Padding that would run past the end of the buffer is tolerated.
func (c *Cursor) Align(n int) {
	if c.err != nil {
		return
	}
	c.off = min(AlignUp(c.off, n), len(c.b))
}

// U8 reads one byte.
func (c *Cursor) U8() uint8 {
	s := c.Bytes(1)
	if s == nil {
		return 0
	}
	return s[0]
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() uint16 {
	s := c.Bytes(2)
	if s == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(s)
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() uint32 {
	s := c.Bytes(4)
	if s == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(s)
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() uint64 {
	s := c.Bytes(8)
	if s == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(s)
}
