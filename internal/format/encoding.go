package format

import (
	"encoding/binary"

	ole "github.com/go-ole/go-ole"
)

// Compound files and property sets are little-endian throughout. Callers are
// expected to bounds-check with internal/buf before using the Read helpers.

// PutU16 writes a little-endian uint16 at off.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a little-endian uint32 at off.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a little-endian uint64 at off.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU16 reads a little-endian uint16 at off.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a little-endian uint32 at off.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a little-endian uint64 at off.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// GUIDSize is the serialized size of a GUID (CLSID or FMTID).
const GUIDSize = 16

// ReadGUID decodes the mixed-endian on-disk GUID layout at off:
// Data1..Data3 little-endian, Data4 as raw bytes.
func ReadGUID(b []byte, off int) ole.GUID {
	var g ole.GUID
	g.Data1 = ReadU32(b, off)
	g.Data2 = ReadU16(b, off+4)
	g.Data3 = ReadU16(b, off+6)
	copy(g.Data4[:], b[off+8:off+16])
	return g
}

// PutGUID writes g at off in on-disk layout.
func PutGUID(b []byte, off int, g ole.GUID) {
	PutU32(b, off, g.Data1)
	PutU16(b, off+4, g.Data2)
	PutU16(b, off+6, g.Data3)
	copy(b[off+8:off+16], g.Data4[:])
}

// GUIDBytes returns the 16-byte on-disk form of g.
func GUIDBytes(g ole.GUID) [GUIDSize]byte {
	var out [GUIDSize]byte
	PutGUID(out[:], 0, g)
	return out
}
