package propset

import (
	"fmt"

	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/buf"
	"github.com/ClicksEnStock/FileInfos/internal/codepage"
	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

// Set is a decoded property-set stream.
type Set struct {
	Version  uint16
	SystemID uint32
	CLSID    ole.GUID
	Sections []*Section
}

// Section is one FMTID-identified group of properties.
type Section struct {
	FMTID    ole.GUID
	CodePage uint16
	// Names is the dictionary (PID 0). Nil when the section has none.
	Names map[uint32]string
	// Properties are in stream order and exclude the dictionary and code page.
	Properties []Property
}

// Property is one entry of a section. Err is set, and Value nil, when the
// value could not be decoded; the rest of the section is unaffected.
type Property struct {
	ID    uint32
	Type  ole.VT
	Value types.Value
	Err   error
}

// Section returns the section with the given FMTID.
func (s *Set) Section(fmtid ole.GUID) (*Section, bool) {
	for _, sec := range s.Sections {
		if ole.IsEqualGUID(&sec.FMTID, &fmtid) {
			return sec, true
		}
	}
	return nil, false
}

// Property returns the first property with the given identifier.
func (sec *Section) Property(pid uint32) (Property, bool) {
	for _, p := range sec.Properties {
		if p.ID == pid {
			return p, true
		}
	}
	return Property{}, false
}

// Name returns the dictionary name of pid.
func (sec *Section) Name(pid uint32) (string, bool) {
	name, ok := sec.Names[pid]
	return name, ok
}

// Parse decodes a property-set stream. Header and section-table problems fail
// the whole parse; a property whose value cannot be decoded is kept with Err set.
func Parse(data []byte) (*Set, error) {
	c := buf.NewCursor(data, 0)
	if bo := c.U16(); c.Err() == nil && bo != format.PropSetByteOrder {
		return nil, fmt.Errorf("%w: byte order %#04x", types.ErrNotPropertySet, bo)
	}
	set := &Set{Version: c.U16(), SystemID: c.U32()}
	if raw := c.Bytes(format.GUIDSize); raw != nil {
		set.CLSID = format.ReadGUID(raw, 0)
	}
	count := c.U32()
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("%w: header: %w", types.ErrNotPropertySet, err)
	}
	if count == 0 || count > format.MaxSections {
		return nil, fmt.Errorf("%w: %d sections", types.ErrNotPropertySet, count)
	}

	for i := range int(count) {
		raw := c.Bytes(format.GUIDSize)
		off := c.U32()
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("%w: section table: %w", types.ErrCorrupt, err)
		}
		sec, err := parseSection(data, format.ReadGUID(raw, 0), off)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		set.Sections = append(set.Sections, sec)
	}
	return set, nil
}

func parseSection(data []byte, fmtid ole.GUID, offset uint32) (*Section, error) {
	off, err := safeOffset(offset)
	if err != nil {
		return nil, err
	}
	if !buf.Has(data, off, format.SectionHeaderSize) {
		return nil, fmt.Errorf("%w: section offset %#x outside stream", types.ErrCorrupt, offset)
	}
	size := int(format.ReadU32(data, off))
	if size < format.SectionHeaderSize {
		return nil, fmt.Errorf("%w: section size %d", types.ErrCorrupt, size)
	}
	// Writers disagree about whether the size covers trailing padding; trust
	// the stream length over the declared size.
	b := data[off:min(len(data), off+size)]

	n := int(format.ReadU32(b, 4))
	if _, err := buf.CheckListBounds(len(b), format.SectionHeaderSize, n, format.PIDOffsetEntrySize); err != nil {
		return nil, fmt.Errorf("%w: property table: %w", types.ErrCorrupt, err)
	}

	type entry struct {
		pid uint32
		off int
	}
	entries := make([]entry, 0, n)
	for i := range n {
		at := format.SectionHeaderSize + i*format.PIDOffsetEntrySize
		entries = append(entries, entry{
			pid: format.ReadU32(b, at),
			off: int(format.ReadU32(b, at+4)),
		})
	}

	sec := &Section{FMTID: fmtid, CodePage: codepage.Default}
	for _, e := range entries {
		if e.pid != format.PIDCodePage {
			continue
		}
		if v, vt, err := decodeValue(b, e.off, codepage.Default); err == nil && (vt == ole.VT_I2 || vt == ole.VT_UI2) {
			sec.CodePage = uint16(valueBits(v))
		}
		break
	}

	for _, e := range entries {
		switch e.pid {
		case format.PIDCodePage:
			continue
		case format.PIDDictionary:
			names, err := decodeDictionary(b, e.off, sec.CodePage)
			if err != nil {
				// A damaged dictionary only costs us names.
				continue
			}
			sec.Names = names
			continue
		}
		v, vt, err := decodeValue(b, e.off, sec.CodePage)
		sec.Properties = append(sec.Properties, Property{ID: e.pid, Type: vt, Value: v, Err: err})
	}
	return sec, nil
}

// valueBits returns the raw integer payload of an I2/UI2 code page value.
func valueBits(v types.Value) uint64 {
	switch x := v.(type) {
	case types.Int:
		return uint64(x.V) & 0xFFFF
	case types.Uint:
		return x.V
	default:
		return codepage.Default
	}
}

func decodeDictionary(b []byte, off int, cp uint16) (map[uint32]string, error) {
	c := buf.NewCursor(b, off)
	n := int(c.U32())
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("%w: dictionary: %w", types.ErrCorrupt, err)
	}
	// Each entry needs at least pid + length.
	if n > c.Remaining()/8 {
		return nil, fmt.Errorf("%w: dictionary with %d entries", types.ErrCorrupt, n)
	}
	names := make(map[uint32]string, n)
	for range n {
		pid := c.U32()
		length, err := safecastLen(c.U32())
		if err != nil {
			return nil, err
		}
		if codepage.IsUnicode(cp) {
			raw := c.Bytes(length * 2)
			c.Align(4)
			if c.Err() == nil {
				names[pid], err = codepage.Decode(cp, raw)
			}
		} else {
			raw := c.Bytes(length)
			if c.Err() == nil {
				names[pid], err = codepage.Decode(cp, raw)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: dictionary entry %d: %w", types.ErrCorrupt, pid, err)
		}
		if cerr := c.Err(); cerr != nil {
			return nil, fmt.Errorf("%w: dictionary entry %d: %w", types.ErrCorrupt, pid, cerr)
		}
	}
	return names, nil
}
