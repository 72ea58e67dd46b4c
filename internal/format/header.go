package format

import (
	"bytes"
	"fmt"

	"github.com/ClicksEnStock/FileInfos/internal/buf"
)

// Header captures the compound file header fields needed to locate the FAT,
// mini FAT, DIFAT and directory chains. See the layout table in consts.go.
type Header struct {
	MinorVersion       uint16
	MajorVersion       uint16
	SectorShift        uint16
	MiniSectorShift    uint16
	NumDirSectors      uint32
	NumFATSectors      uint32
	FirstDirSector     uint32
	TransactionSig     uint32
	MiniStreamCutoff   uint32
	FirstMiniFATSector uint32
	NumMiniFATSectors  uint32
	FirstDIFATSector   uint32
	NumDIFATSectors    uint32
	DIFAT              [HeaderDIFATEntries]uint32
}

// SectorSize returns the regular sector size in bytes.
func (h Header) SectorSize() int { return 1 << h.SectorShift }

// MiniSectorSize returns the mini sector size in bytes.
func (h Header) MiniSectorSize() int { return 1 << h.MiniSectorShift }

// ParseHeader validates and extracts the compound file header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("cfb header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:len(Signature)], Signature) {
		return Header{}, fmt.Errorf("cfb header: %w", ErrSignatureMismatch)
	}
	if bom := ReadU16(b, HeaderByteOrderOffset); bom != ByteOrderMark {
		return Header{}, fmt.Errorf("cfb header: byte order 0x%04X: %w", bom, ErrSignatureMismatch)
	}

	var h Header
	c := buf.NewCursor(b, HeaderMinorVersionOffset)
	h.MinorVersion = c.U16()
	h.MajorVersion = c.U16()
	c.Skip(2) // byte order, checked above
	h.SectorShift = c.U16()
	h.MiniSectorShift = c.U16()
	c = buf.NewCursor(b, HeaderNumDirSectorsOffset)
	h.NumDirSectors = c.U32()
	h.NumFATSectors = c.U32()
	h.FirstDirSector = c.U32()
	h.TransactionSig = c.U32()
	h.MiniStreamCutoff = c.U32()
	h.FirstMiniFATSector = c.U32()
	h.NumMiniFATSectors = c.U32()
	h.FirstDIFATSector = c.U32()
	h.NumDIFATSectors = c.U32()
	for i := range h.DIFAT {
		h.DIFAT[i] = c.U32()
	}
	if err := c.Err(); err != nil {
		return Header{}, fmt.Errorf("cfb header: %w", ErrTruncated)
	}

	switch {
	case h.MajorVersion == MajorVersion3 && h.SectorShift == SectorShiftV3:
	case h.MajorVersion == MajorVersion4 && h.SectorShift == SectorShiftV4:
	default:
		return Header{}, fmt.Errorf("cfb header: version %d with sector shift %d: %w",
			h.MajorVersion, h.SectorShift, ErrUnsupported)
	}
	if h.MiniSectorShift != MiniSectorShift {
		return Header{}, fmt.Errorf("cfb header: mini sector shift %d: %w", h.MiniSectorShift, ErrUnsupported)
	}
	if h.MiniStreamCutoff != MiniStreamCutoff {
		return Header{}, fmt.Errorf("cfb header: mini stream cutoff %d: %w", h.MiniStreamCutoff, ErrUnsupported)
	}
	return h, nil
}

// PutHeader serializes h into the first HeaderSize bytes of b.
func PutHeader(b []byte, h Header) {
	copy(b[HeaderSignatureOffset:], Signature)
	for i := HeaderCLSIDOffset; i < HeaderMinorVersionOffset; i++ {
		b[i] = 0
	}
	PutU16(b, HeaderMinorVersionOffset, h.MinorVersion)
	PutU16(b, HeaderMajorVersionOffset, h.MajorVersion)
	PutU16(b, HeaderByteOrderOffset, ByteOrderMark)
	PutU16(b, HeaderSectorShiftOffset, h.SectorShift)
	PutU16(b, HeaderMiniShiftOffset, h.MiniSectorShift)
	for i := HeaderMiniShiftOffset + 2; i < HeaderNumDirSectorsOffset; i++ {
		b[i] = 0
	}
	PutU32(b, HeaderNumDirSectorsOffset, h.NumDirSectors)
	PutU32(b, HeaderNumFATSectorsOffset, h.NumFATSectors)
	PutU32(b, HeaderFirstDirOffset, h.FirstDirSector)
	PutU32(b, HeaderTxSignatureOffset, h.TransactionSig)
	PutU32(b, HeaderMiniCutoffOffset, h.MiniStreamCutoff)
	PutU32(b, HeaderFirstMiniFATOffset, h.FirstMiniFATSector)
	PutU32(b, HeaderNumMiniFATOffset, h.NumMiniFATSectors)
	PutU32(b, HeaderFirstDIFATOffset, h.FirstDIFATSector)
	PutU32(b, HeaderNumDIFATOffset, h.NumDIFATSectors)
	for i, s := range h.DIFAT {
		PutU32(b, HeaderDIFATOffset+4*i, s)
	}
}
