package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	ole "github.com/go-ole/go-ole"
	xunicode "golang.org/x/text/encoding/unicode"
)

var utf16LE = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)

// DirEntry is a decoded 128-byte directory entry.
type DirEntry struct {
	Name        string
	Type        ObjectType
	Color       uint8
	Left        uint32
	Right       uint32
	Child       uint32
	CLSID       ole.GUID
	StateBits   uint32
	Created     uint64
	Modified    uint64
	StartSector uint32
	Size        uint64
}

// IsStorage reports whether the entry is a storage or the root storage.
func (e DirEntry) IsStorage() bool { return e.Type == ObjStorage || e.Type == ObjRoot }

// ParseDirEntry decodes one directory entry from b.
func ParseDirEntry(b []byte) (DirEntry, error) {
	if len(b) < DirEntrySize {
		return DirEntry{}, fmt.Errorf("directory entry: %w", ErrTruncated)
	}
	e := DirEntry{
		Type:        ObjectType(b[DirTypeOffset]),
		Color:       b[DirColorOffset],
		Left:        ReadU32(b, DirLeftOffset),
		Right:       ReadU32(b, DirRightOffset),
		Child:       ReadU32(b, DirChildOffset),
		CLSID:       ReadGUID(b, DirCLSIDOffset),
		StateBits:   ReadU32(b, DirStateOffset),
		Created:     ReadU64(b, DirCreatedOffset),
		Modified:    ReadU64(b, DirModifiedOffset),
		StartSector: ReadU32(b, DirStartOffset),
		Size:        ReadU64(b, DirSizeOffset),
	}
	if e.Type == ObjUnknown {
		return e, nil
	}

	nameLen := int(ReadU16(b, DirNameLenOffset))
	if nameLen < 2 || nameLen > DirNameSize || nameLen%2 != 0 {
		return DirEntry{}, fmt.Errorf("directory entry: name length %d: %w", nameLen, ErrTruncated)
	}
	name, err := utf16LE.NewDecoder().Bytes(b[DirNameOffset : DirNameOffset+nameLen-2])
	if err != nil {
		return DirEntry{}, fmt.Errorf("directory entry name: %w", err)
	}
	e.Name = string(name)
	return e, nil
}

// PutDirEntry serializes e into b (at least DirEntrySize bytes).
func PutDirEntry(b []byte, e DirEntry) error {
	clear(b[:DirEntrySize])
	if e.Type != ObjUnknown {
		raw, err := utf16LE.NewEncoder().Bytes([]byte(e.Name))
		if err != nil {
			return fmt.Errorf("directory entry name %q: %w", e.Name, err)
		}
		if len(raw) > DirNameSize-2 {
			return fmt.Errorf("directory entry name %q longer than %d characters: %w",
				e.Name, MaxNameChars, ErrUnsupported)
		}
		copy(b[DirNameOffset:], raw)
		PutU16(b, DirNameLenOffset, uint16(len(raw)+2))
	}
	b[DirTypeOffset] = byte(e.Type)
	b[DirColorOffset] = e.Color
	PutU32(b, DirLeftOffset, e.Left)
	PutU32(b, DirRightOffset, e.Right)
	PutU32(b, DirChildOffset, e.Child)
	PutGUID(b, DirCLSIDOffset, e.CLSID)
	PutU32(b, DirStateOffset, e.StateBits)
	PutU64(b, DirCreatedOffset, e.Created)
	PutU64(b, DirModifiedOffset, e.Modified)
	PutU32(b, DirStartOffset, e.StartSector)
	PutU64(b, DirSizeOffset, e.Size)
	return nil
}

// CompareNames orders entry names the way compound file sibling trees do:
// shorter names first, then by upper-cased UTF-16 code units.
func CompareNames(a, b string) int {
	ua := utf16.Encode([]rune(strings.Map(unicode.ToUpper, a)))
	ub := utf16.Encode([]rune(strings.Map(unicode.ToUpper, b)))
	if len(ua) != len(ub) {
		if len(ua) < len(ub) {
			return -1
		}
		return 1
	}
	for i := range ua {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
