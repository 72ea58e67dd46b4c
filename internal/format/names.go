package format

import (
	"fmt"
	"strings"

	ole "github.com/go-ole/go-ole"
)

// Well-known property set format identifiers.
var (
	FMTIDSummaryInformation    = ole.GUID{Data1: 0xF29F85E0, Data2: 0x4FF9, Data3: 0x1068, Data4: [8]byte{0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9}}
	FMTIDDocSummaryInformation = ole.GUID{Data1: 0xD5CDD502, Data2: 0x2E9C, Data3: 0x101B, Data4: [8]byte{0x93, 0x97, 0x08, 0x00, 0x2B, 0x2C, 0xF9, 0xAE}}
	FMTIDUserDefinedProperties = ole.GUID{Data1: 0xD5CDD505, Data2: 0x2E9C, Data3: 0x101B, Data4: [8]byte{0x93, 0x97, 0x08, 0x00, 0x2B, 0x2C, 0xF9, 0xAE}}
	FMTIDGlobalInfo            = ole.GUID{Data1: 0x56616F00, Data2: 0xC154, Data3: 0x11CE, Data4: [8]byte{0x85, 0x53, 0x00, 0xAA, 0x00, 0xA1, 0xF9, 0x5B}}
	FMTIDImageContents         = ole.GUID{Data1: 0x56616400, Data2: 0xC154, Data3: 0x11CE, Data4: [8]byte{0x85, 0x53, 0x00, 0xAA, 0x00, 0xA1, 0xF9, 0x5B}}
	FMTIDImageInfo             = ole.GUID{Data1: 0x56616500, Data2: 0xC154, Data3: 0x11CE, Data4: [8]byte{0x85, 0x53, 0x00, 0xAA, 0x00, 0xA1, 0xF9, 0x5B}}
)

// Well-known property set stream names (without the \x05 prefix).
const (
	SummaryInformationName    = "SummaryInformation"
	DocSummaryInformationName = "DocumentSummaryInformation"
	GlobalInfoName            = "GlobalInfo"
	ImageContentsName         = "ImageContents"
	ImageInfoName             = "ImageInfo"
)

// The user-defined set shares the DocumentSummaryInformation stream as its
// second section, so it has no name of its own.
var wellKnownSets = []struct {
	fmtid ole.GUID
	name  string
}{
	{FMTIDSummaryInformation, SummaryInformationName},
	{FMTIDDocSummaryInformation, DocSummaryInformationName},
	{FMTIDGlobalInfo, GlobalInfoName},
	{FMTIDImageContents, ImageContentsName},
	{FMTIDImageInfo, ImageInfoName},
}

const (
	propSetAlphabet  = "abcdefghijklmnopqrstuvwxyz012345"
	propSetNameChars = 26 // ceil(128 / 5)
	guidBits         = GUIDSize * 8
	charBits         = 5
)

// PropSetName returns the stream or storage name (without the \x05 prefix)
// under which the property set fmtid is stored.
//
// Names that are not well known are the FMTID bytes read as a little-endian
// bit stream in 5-bit groups, each mapped through a-z0-5. A group that starts
// on a byte boundary is upper-cased.
func PropSetName(fmtid ole.GUID) string {
	if fmtid == FMTIDUserDefinedProperties {
		return DocSummaryInformationName
	}
	for _, wk := range wellKnownSets {
		if wk.fmtid == fmtid {
			return wk.name
		}
	}

	raw := GUIDBytes(fmtid)
	var sb strings.Builder
	sb.Grow(propSetNameChars)
	for bit := 0; bit < guidBits; bit += charBits {
		ch := propSetAlphabet[bitsAt(raw[:], bit)]
		if bit%8 == 0 && ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// PropSetFMTID is the inverse of PropSetName. The DocumentSummaryInformation
// name always maps to the document summary FMTID.
func PropSetFMTID(name string) (ole.GUID, error) {
	for _, wk := range wellKnownSets {
		if strings.EqualFold(wk.name, name) {
			return wk.fmtid, nil
		}
	}
	if len(name) != propSetNameChars {
		return ole.GUID{}, fmt.Errorf("%q: %w", name, ErrBadName)
	}

	var raw [GUIDSize]byte
	for i := 0; i < len(name); i++ {
		v := charValue(name[i])
		if v < 0 {
			return ole.GUID{}, fmt.Errorf("%q: character %q: %w", name, name[i], ErrBadName)
		}
		bit := i * charBits
		for j := 0; j < charBits; j++ {
			if v>>j&1 == 0 {
				continue
			}
			p := bit + j
			if p >= guidBits {
				return ole.GUID{}, fmt.Errorf("%q: stray high bits: %w", name, ErrBadName)
			}
			raw[p/8] |= 1 << (p % 8)
		}
	}
	return ReadGUID(raw[:], 0), nil
}

// bitsAt returns the 5-bit group starting at bit; bits past the end read as zero.
func bitsAt(raw []byte, bit int) int {
	v := 0
	for j := 0; j < charBits; j++ {
		p := bit + j
		if p >= len(raw)*8 {
			break
		}
		if raw[p/8]>>(p%8)&1 == 1 {
			v |= 1 << j
		}
	}
	return v
}

func charValue(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= '0' && c <= '5':
		return int(c-'0') + 26
	default:
		return -1
	}
}
