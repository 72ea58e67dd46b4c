package propset

import (
	"encoding/binary"
	"testing"

	ole "github.com/go-ole/go-ole"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClicksEnStock/FileInfos/internal/codepage"
	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	set := NewSet(types.FMTIDSummaryInformation)
	sec := set.Sections[0]
	sec.SetName(format.PIDDictionary, "Summary")
	sec.Add(2, "Title", types.String{Type: ole.VT_LPWSTR, V: "Report"})
	sec.Add(3, "Subject", types.String{Type: ole.VT_LPSTR, V: "Q3 numbers"})
	sec.Add(4, "Small", types.Int{Type: ole.VT_I1, V: -3})
	sec.Add(5, "Short", types.Int{Type: ole.VT_I2, V: -5})
	sec.Add(6, "Long", types.Int{Type: ole.VT_I4, V: -70000})
	sec.Add(7, "Huge", types.Int{Type: ole.VT_I8, V: -1 << 40})
	sec.Add(8, "", types.Uint{Type: ole.VT_UI2, V: 65535})
	sec.Add(9, "Pages", types.Uint{Type: ole.VT_UI4, V: 12})
	sec.Add(10, "Ratio", types.Float{Type: ole.VT_R8, V: 0.25})
	sec.Add(11, "Scale", types.Float{Type: ole.VT_R4, V: 1.5})
	sec.Add(12, "Final", types.Bool(true))
	sec.Add(13, "Status", types.SCode(0x80004005))
	sec.Add(14, "Saved", types.FileTime{High: 0x01D9A1B2, Low: 0x3C4D5E6F})
	sec.Add(15, "Class", types.CLSID(types.FMTIDDocSummaryInformation))
	sec.Add(16, "Nothing", types.Empty{Type: ole.VT_EMPTY})

	data, err := Encode(set)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got.Sections, 1)
	gsec := got.Sections[0]
	assert.True(t, ole.IsEqualGUID(&gsec.FMTID, &types.FMTIDSummaryInformation))
	assert.Equal(t, uint16(codepage.UTF16), gsec.CodePage)
	assert.Equal(t, uint32(format.PropSetSystemID), got.SystemID)

	if diff := cmp.Diff(sec.Names, gsec.Names); diff != "" {
		t.Errorf("dictionary mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, gsec.Properties, len(sec.Properties))
	for i, want := range sec.Properties {
		p := gsec.Properties[i]
		require.NoError(t, p.Err, "pid %d", want.ID)
		assert.Equal(t, want.ID, p.ID)
		assert.Equal(t, want.Type, p.Type)
		assert.Equal(t, want.Value, p.Value, "pid %d", want.ID)
	}

	name, ok := gsec.Name(2)
	assert.True(t, ok)
	assert.Equal(t, "Title", name)
	_, ok = gsec.Name(8)
	assert.False(t, ok)

	p, ok := gsec.Property(2)
	require.True(t, ok)
	assert.Equal(t, types.String{Type: ole.VT_LPWSTR, V: "Report"}, p.Value)
}

func TestCodePageStringsAndDictionary(t *testing.T) {
	set := NewSet(types.FMTIDDocSummaryInformation)
	sec := set.Sections[0]
	sec.CodePage = 1252
	sec.Add(2, "Café", types.String{Type: ole.VT_LPSTR, V: "naïve"})

	data, err := Encode(set)
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)

	gsec := got.Sections[0]
	assert.Equal(t, uint16(1252), gsec.CodePage)
	assert.Equal(t, "Café", gsec.Names[2])
	assert.Equal(t, types.String{Type: ole.VT_LPSTR, V: "naïve"}, gsec.Properties[0].Value)
}

func TestUTF8CodePageStoredAsNegativeShort(t *testing.T) {
	set := NewSet(types.FMTIDSummaryInformation)
	set.Sections[0].CodePage = codepage.UTF8
	set.Sections[0].Add(2, "", types.String{Type: ole.VT_LPSTR, V: "héllo"})

	data, err := Encode(set)
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(codepage.UTF8), got.Sections[0].CodePage)
	assert.Equal(t, "héllo", got.Sections[0].Properties[0].Value.(types.String).V)
}

func TestTwoSections(t *testing.T) {
	set := NewSet(types.FMTIDDocSummaryInformation)
	set.Sections[0].Add(2, "", types.String{Type: ole.VT_LPSTR, V: "Sales"})
	user := &Section{FMTID: types.FMTIDUserDefinedProperties, CodePage: codepage.UTF16}
	user.Add(2, "Client", types.String{Type: ole.VT_LPWSTR, V: "ACME"})
	set.Sections = append(set.Sections, user)

	data, err := Encode(set)
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)

	sec, ok := got.Section(types.FMTIDUserDefinedProperties)
	require.True(t, ok)
	assert.Equal(t, "Client", sec.Names[2])
	_, ok = got.Section(types.FMTIDImageInfo)
	assert.False(t, ok)
}

// rawSection builds a one-section stream whose single property is the given
// TypedPropertyValue bytes.
func rawSection(value []byte) []byte {
	le := binary.LittleEndian
	out := le.AppendUint16(nil, format.PropSetByteOrder)
	out = le.AppendUint16(out, 0)
	out = le.AppendUint32(out, format.PropSetSystemID)
	out = append(out, make([]byte, 16)...)
	out = le.AppendUint32(out, 1)
	fmtid := format.GUIDBytes(types.FMTIDSummaryInformation)
	out = append(out, fmtid[:]...)
	out = le.AppendUint32(out, uint32(len(out)+4))

	size := 8 + 8 + len(value)
	out = le.AppendUint32(out, uint32(size))
	out = le.AppendUint32(out, 1)
	out = le.AppendUint32(out, 2)
	out = le.AppendUint32(out, 16)
	return append(out, value...)
}

func TestUnsupportedTypesDecodeAsPlaceholder(t *testing.T) {
	for _, vt := range []ole.VT{ole.VT_CY, ole.VT_DATE, ole.VT_BLOB, ole.VT_VECTOR | ole.VT_LPSTR, ole.VT_CF} {
		value := binary.LittleEndian.AppendUint16(nil, uint16(vt))
		value = append(value, make([]byte, 10)...)
		set, err := Parse(rawSection(value))
		require.NoError(t, err)
		p := set.Sections[0].Properties[0]
		require.NoError(t, p.Err)
		assert.Equal(t, types.Unsupported{Type: vt}, p.Value)
	}
}

func TestTruncatedValueOnlyFailsThatProperty(t *testing.T) {
	// VT_LPWSTR claiming 100 characters with 2 bytes present.
	value := binary.LittleEndian.AppendUint16(nil, uint16(ole.VT_LPWSTR))
	value = binary.LittleEndian.AppendUint16(value, 0)
	value = binary.LittleEndian.AppendUint32(value, 100)
	value = append(value, 'x', 0)

	set, err := Parse(rawSection(value))
	require.NoError(t, err)
	p := set.Sections[0].Properties[0]
	assert.Nil(t, p.Value)
	assert.Equal(t, ole.VT_LPWSTR, p.Type)
	require.Error(t, p.Err)
	assert.ErrorIs(t, p.Err, types.ErrCorrupt)
}

func TestParseRejectsBadHeaders(t *testing.T) {
	t.Run("byte order", func(t *testing.T) {
		data := rawSection([]byte{0, 0, 0, 0})
		data[0] = 0xFF
		data[1] = 0xFF
		_, err := Parse(data)
		assert.ErrorIs(t, err, types.ErrNotPropertySet)
	})
	t.Run("short", func(t *testing.T) {
		_, err := Parse([]byte{0xFE, 0xFF, 0})
		assert.ErrorIs(t, err, types.ErrNotPropertySet)
	})
	t.Run("no sections", func(t *testing.T) {
		data := rawSection([]byte{0, 0, 0, 0})
		binary.LittleEndian.PutUint32(data[24:], 0)
		_, err := Parse(data)
		assert.ErrorIs(t, err, types.ErrNotPropertySet)
	})
	t.Run("section offset", func(t *testing.T) {
		data := rawSection([]byte{0, 0, 0, 0})
		binary.LittleEndian.PutUint32(data[44:], 0xFFFF)
		_, err := Parse(data)
		assert.ErrorIs(t, err, types.ErrCorrupt)
	})
	t.Run("property count", func(t *testing.T) {
		data := rawSection([]byte{0, 0, 0, 0})
		binary.LittleEndian.PutUint32(data[52:], 1000)
		_, err := Parse(data)
		assert.ErrorIs(t, err, types.ErrCorrupt)
	})
}

func TestEncodeRejectsOverflowAndUndecoded(t *testing.T) {
	set := NewSet(types.FMTIDSummaryInformation)
	set.Sections[0].Add(2, "", types.Int{Type: ole.VT_I2, V: 70000})
	_, err := Encode(set)
	require.Error(t, err)

	set = NewSet(types.FMTIDSummaryInformation)
	set.Sections[0].Properties = append(set.Sections[0].Properties, Property{ID: 3, Type: ole.VT_LPWSTR})
	_, err = Encode(set)
	assert.ErrorIs(t, err, types.ErrUnsupported)

	_, err = Encode(&Set{})
	assert.ErrorIs(t, err, types.ErrUnsupported)
}
