package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		cp   uint16
		in   []byte
		want string
	}{
		{"ascii 1252", 1252, []byte("Report\x00"), "Report"},
		{"latin 1252", 1252, []byte{'c', 'a', 'f', 0xE9, 0}, "café"},
		{"cyrillic 1251", 1251, []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, "Привет"},
		{"utf16", UTF16, []byte{'H', 0, 'i', 0, 0, 0}, "Hi"},
		{"utf16 odd trailing byte", UTF16, []byte{'H', 0, 'i', 0, 0}, "Hi"},
		{"utf8", UTF8, []byte("naïve\x00\x00"), "naïve"},
		{"unknown falls back to 1252", 4242, []byte{0xE9}, "é"},
		{"empty", 1252, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.cp, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, cp := range []uint16{1252, 1251, UTF16, UTF8, 932} {
		s := "Report"
		if cp == 1251 {
			s = "Отчёт"
		}
		if cp == 932 {
			s = "報告書"
		}
		b, err := Encode(cp, s)
		require.NoError(t, err)
		got, err := Decode(cp, b)
		require.NoError(t, err)
		assert.Equal(t, s, got, "code page %d", cp)
	}
}

func TestEncodeUnrepresentable(t *testing.T) {
	_, err := Encode(1252, "報告")
	require.Error(t, err)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(1252))
	assert.True(t, Known(UTF16))
	assert.False(t, Known(1))
	assert.True(t, IsUnicode(UTF16))
	assert.False(t, IsUnicode(UTF8))
}
