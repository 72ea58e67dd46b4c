package propset

import (
	"encoding/binary"
	"fmt"
	"slices"

	"fortio.org/safecast"
	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/codepage"
	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

var le = binary.LittleEndian

// NewSet returns a single-section set for fmtid using UTF-16 strings.
func NewSet(fmtid ole.GUID) *Set {
	return &Set{
		SystemID: format.PropSetSystemID,
		Sections: []*Section{{FMTID: fmtid, CodePage: codepage.UTF16}},
	}
}

// Add appends a property to the section and, when name is non-empty,
// records it in the dictionary.
func (sec *Section) Add(pid uint32, name string, v types.Value) {
	sec.Properties = append(sec.Properties, Property{ID: pid, Type: v.VT(), Value: v})
	if name != "" {
		sec.SetName(pid, name)
	}
}

// SetName records a dictionary entry.
func (sec *Section) SetName(pid uint32, name string) {
	if sec.Names == nil {
		sec.Names = make(map[uint32]string)
	}
	sec.Names[pid] = name
}

// Encode serializes s. The code page property is always written and the
// dictionary is written when the section has names. Properties that failed
// to decode cannot be encoded.
func Encode(s *Set) ([]byte, error) {
	if len(s.Sections) == 0 || len(s.Sections) > format.MaxSections {
		return nil, fmt.Errorf("%w: %d sections", types.ErrUnsupported, len(s.Sections))
	}

	bodies := make([][]byte, len(s.Sections))
	for i, sec := range s.Sections {
		body, err := encodeSection(sec)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		bodies[i] = body
	}

	sysID := s.SystemID
	if sysID == 0 {
		sysID = format.PropSetSystemID
	}
	out := make([]byte, 0, format.PropSetHeaderSize)
	out = le.AppendUint16(out, format.PropSetByteOrder)
	out = le.AppendUint16(out, s.Version)
	out = le.AppendUint32(out, sysID)
	clsid := format.GUIDBytes(s.CLSID)
	out = append(out, clsid[:]...)
	out = le.AppendUint32(out, uint32(len(s.Sections)))

	off := format.PropSetHeaderSize + len(s.Sections)*format.PropSetFMTIDEntrySize
	for i, sec := range s.Sections {
		fmtid := format.GUIDBytes(sec.FMTID)
		out = append(out, fmtid[:]...)
		o, err := safecast.Conv[uint32](off)
		if err != nil {
			return nil, err
		}
		out = le.AppendUint32(out, o)
		off += len(bodies[i])
	}
	for _, body := range bodies {
		out = append(out, body...)
	}
	return out, nil
}

func encodeSection(sec *Section) ([]byte, error) {
	cp := sec.CodePage
	if cp == 0 {
		cp = codepage.Default
	}

	type blob struct {
		pid  uint32
		data []byte
	}
	blobs := []blob{}

	cpValue, err := appendValue(nil, types.Int{Type: ole.VT_I2, V: int64(int16(cp))}, cp)
	if err != nil {
		return nil, err
	}
	blobs = append(blobs, blob{pid: format.PIDCodePage, data: cpValue})

	if len(sec.Names) > 0 {
		dict, err := encodeDictionary(sec.Names, cp)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob{pid: format.PIDDictionary, data: dict})
	}

	for _, p := range sec.Properties {
		if p.ID == format.PIDCodePage || p.ID == format.PIDDictionary {
			continue
		}
		if p.Value == nil {
			return nil, fmt.Errorf("property %d: %w", p.ID, types.ErrUnsupported)
		}
		data, err := appendValue(nil, p.Value, cp)
		if err != nil {
			return nil, fmt.Errorf("property %d: %w", p.ID, err)
		}
		blobs = append(blobs, blob{pid: p.ID, data: data})
	}

	tableEnd := format.SectionHeaderSize + len(blobs)*format.PIDOffsetEntrySize
	size := tableEnd
	for _, b := range blobs {
		size += len(b.data)
	}
	size32, err := safecast.Conv[uint32](size)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, size)
	out = le.AppendUint32(out, size32)
	out = le.AppendUint32(out, uint32(len(blobs)))
	off := tableEnd
	for _, b := range blobs {
		out = le.AppendUint32(out, b.pid)
		out = le.AppendUint32(out, uint32(off))
		off += len(b.data)
	}
	for _, b := range blobs {
		out = append(out, b.data...)
	}
	return out, nil
}

func encodeDictionary(names map[uint32]string, cp uint16) ([]byte, error) {
	pids := make([]uint32, 0, len(names))
	for pid := range names {
		pids = append(pids, pid)
	}
	slices.Sort(pids)

	out := le.AppendUint32(nil, uint32(len(pids)))
	for _, pid := range pids {
		raw, err := codepage.Encode(cp, names[pid]+"\x00")
		if err != nil {
			return nil, fmt.Errorf("dictionary entry %d: %w", pid, err)
		}
		n := len(raw)
		if codepage.IsUnicode(cp) {
			n /= 2
		}
		out = le.AppendUint32(out, pid)
		out = le.AppendUint32(out, uint32(n))
		out = append(out, raw...)
		if codepage.IsUnicode(cp) {
			out = pad4(out)
		}
	}
	return pad4(out), nil
}
