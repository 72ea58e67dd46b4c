package format

import (
	"strings"
	"testing"

	ole "github.com/go-ole/go-ole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropSetNameWellKnown(t *testing.T) {
	tests := []struct {
		fmtid ole.GUID
		want  string
	}{
		{FMTIDSummaryInformation, "SummaryInformation"},
		{FMTIDDocSummaryInformation, "DocumentSummaryInformation"},
		{FMTIDUserDefinedProperties, "DocumentSummaryInformation"},
		{FMTIDGlobalInfo, "GlobalInfo"},
		{FMTIDImageContents, "ImageContents"},
		{FMTIDImageInfo, "ImageInfo"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PropSetName(tt.fmtid))
		})
	}
}

func TestPropSetNameEncoding(t *testing.T) {
	// All-zero bits: every group is 'a', upper-cased on byte boundaries
	// (bits 0, 40, 80 and 120, i.e. characters 0, 8, 16 and 24).
	assert.Equal(t, "AaaaaaaaAaaaaaaaAaaaaaaaAa", PropSetName(ole.GUID{}))

	// All-one bits: every full group is '5'; the final group has only 3 bits.
	ones := ole.GUID{Data1: 0xFFFFFFFF, Data2: 0xFFFF, Data3: 0xFFFF,
		Data4: [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}}
	assert.Equal(t, strings.Repeat("5", 25)+"h", PropSetName(ones))
}

func TestPropSetNameRoundTrip(t *testing.T) {
	ids := []ole.GUID{
		{},
		{Data1: 0x12345678, Data2: 0x9ABC, Data3: 0xDEF0, Data4: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{Data1: 0xD5CDD505, Data2: 0x2E9D, Data3: 0x101B, Data4: [8]byte{0x93, 0x97, 0x08, 0x00, 0x2B, 0x2C, 0xF9, 0xAE}},
		{Data1: 0xFFFFFFFF, Data2: 0xFFFF, Data3: 0xFFFF, Data4: [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, id := range ids {
		name := PropSetName(id)
		require.Len(t, name, propSetNameChars)

		got, err := PropSetFMTID(name)
		require.NoError(t, err)
		assert.Equal(t, id, got, "round trip of %s via %q", id.String(), name)

		// Lookup is case-insensitive.
		got, err = PropSetFMTID(strings.ToLower(name))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestPropSetFMTIDWellKnown(t *testing.T) {
	got, err := PropSetFMTID("documentsummaryinformation")
	require.NoError(t, err)
	assert.Equal(t, FMTIDDocSummaryInformation, got)

	got, err = PropSetFMTID("SummaryInformation")
	require.NoError(t, err)
	assert.Equal(t, FMTIDSummaryInformation, got)
}

func TestPropSetFMTIDRejectsBadNames(t *testing.T) {
	for _, name := range []string{
		"",
		"Short",
		"AaaaaaaaAaaaaaaaAaaaaaaaA!",       // invalid character
		"AaaaaaaaAaaaaaaaAaaaaaaaA9",       // '9' is outside the alphabet
		"AaaaaaaaAaaaaaaaAaaaaaaaA5",       // final group sets bits past 128
		"AaaaaaaaAaaaaaaaAaaaaaaaAaaaaaaa", // too long
	} {
		_, err := PropSetFMTID(name)
		require.ErrorIs(t, err, ErrBadName, name)
	}
}
