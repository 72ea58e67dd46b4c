package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	h := Header{
		MinorVersion:       MinorVersion,
		MajorVersion:       MajorVersion3,
		SectorShift:        SectorShiftV3,
		MiniSectorShift:    MiniSectorShift,
		NumFATSectors:      1,
		FirstDirSector:     1,
		MiniStreamCutoff:   MiniStreamCutoff,
		FirstMiniFATSector: 2,
		NumMiniFATSectors:  1,
		FirstDIFATSector:   EndOfChain,
	}
	for i := range h.DIFAT {
		h.DIFAT[i] = FreeSect
	}
	h.DIFAT[0] = 0
	return h
}

func TestHeaderRoundTrip(t *testing.T) {
	want := sampleHeader()
	b := make([]byte, HeaderSize)
	PutHeader(b, want)

	got, err := ParseHeader(b)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 512, got.SectorSize())
	assert.Equal(t, 64, got.MiniSectorSize())
}

func TestParseHeaderErrors(t *testing.T) {
	valid := make([]byte, HeaderSize)
	PutHeader(valid, sampleHeader())

	tests := []struct {
		name    string
		mutate  func(b []byte) []byte
		wantErr error
	}{
		{"truncated", func(b []byte) []byte { return b[:100] }, ErrTruncated},
		{"bad signature", func(b []byte) []byte { b[0] = 'X'; return b }, ErrSignatureMismatch},
		{"bad byte order", func(b []byte) []byte { PutU16(b, HeaderByteOrderOffset, 0xFEFF); return b }, ErrSignatureMismatch},
		{"v3 with 4K sectors", func(b []byte) []byte { PutU16(b, HeaderSectorShiftOffset, SectorShiftV4); return b }, ErrUnsupported},
		{"bad mini shift", func(b []byte) []byte { PutU16(b, HeaderMiniShiftOffset, 7); return b }, ErrUnsupported},
		{"bad cutoff", func(b []byte) []byte { PutU32(b, HeaderMiniCutoffOffset, 0x800); return b }, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := append([]byte(nil), valid...)
			_, err := ParseHeader(tt.mutate(b))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseHeaderVersion4(t *testing.T) {
	h := sampleHeader()
	h.MajorVersion = MajorVersion4
	h.SectorShift = SectorShiftV4
	b := make([]byte, HeaderSize)
	PutHeader(b, h)

	got, err := ParseHeader(b)
	require.NoError(t, err)
	assert.Equal(t, 4096, got.SectorSize())
}
