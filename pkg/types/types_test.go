package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	ole "github.com/go-ole/go-ole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want HRESULT
	}{
		{"nil", nil, S_OK},
		{"sentinel", ErrNotFound, STG_E_FILENOTFOUND},
		{"wrapped", fmt.Errorf("open x: %w", ErrShareViolation), STG_E_SHAREVIOLATION},
		{"corrupt with cause", fmt.Errorf("%w: %w", ErrCorrupt, errors.New("bad chain")), STG_E_DOCFILECORRUPT},
		{"header", ErrNotCompound, STG_E_INVALIDHEADER},
		{"missing file", fmt.Errorf("open: %w", os.ErrNotExist), STG_E_FILENOTFOUND},
		{"permission", os.ErrPermission, STG_E_ACCESSDENIED},
		{"plain", errors.New("boom"), E_FAIL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestErrorUnwrapAndKind(t *testing.T) {
	cause := errors.New("short read")
	err := &Error{Kind: ErrKindCorrupt, Code: STG_E_DOCFILECORRUPT, Msg: "fat", Err: cause}
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "fat: short read", err.Error())
	assert.True(t, IsKind(fmt.Errorf("wrap: %w", err), ErrKindCorrupt))
	assert.False(t, IsKind(err, ErrKindNotFound))
	assert.False(t, IsKind(errors.New("x"), ErrKindCorrupt))
}

func TestHRESULTFormatting(t *testing.T) {
	assert.Equal(t, "STG_E_FILENOTFOUND", STG_E_FILENOTFOUND.String())
	assert.Equal(t, "0x80030002", STG_E_FILENOTFOUND.Hex())
	assert.Equal(t, "0x12345678", HRESULT(0x12345678).String())
	assert.True(t, E_FAIL.Failed())
	assert.False(t, S_OK.Failed())

	text, err := STG_E_SHAREVIOLATION.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0x80030020", string(text))
}

func TestHRESULTTextRoundTrip(t *testing.T) {
	in := Diagnostic{Path: "doc", Op: "open storage", Code: STG_E_DOCFILECORRUPT, Message: "corrupt"}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code":"0x80030109"`)

	var out Diagnostic
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Code, out.Code)

	var h HRESULT
	require.NoError(t, h.UnmarshalText([]byte("0X8003000a")))
	assert.Equal(t, HRESULT(0x8003000A), h)

	for _, bad := range []string{"", "80030102", "0x", "0xZZ", "0x1FFFFFFFF"} {
		assert.Error(t, h.UnmarshalText([]byte(bad)), bad)
	}
}

func TestValueTags(t *testing.T) {
	tests := []struct {
		v    Value
		want VT
	}{
		{Empty{Type: ole.VT_NULL}, ole.VT_NULL},
		{Int{Type: ole.VT_I2, V: -5}, ole.VT_I2},
		{Uint{Type: ole.VT_UI4, V: 7}, ole.VT_UI4},
		{Float{Type: ole.VT_R8, V: 1.5}, ole.VT_R8},
		{String{Type: ole.VT_LPWSTR, V: "x"}, ole.VT_LPWSTR},
		{Bool(true), ole.VT_BOOL},
		{SCode(0x80004005), ole.VT_ERROR},
		{FileTime{}, ole.VT_FILETIME},
		{CLSID{}, ole.VT_CLSID},
		{Unsupported{Type: ole.VT_CY}, ole.VT_CY},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.VT(), "%T", tt.v)
	}
}

func TestFileTimeRoundTrip(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	ft := NewFileTime(when)
	assert.True(t, ft.Time().Equal(when))
	assert.Equal(t, uint64(ft.High)<<32|uint64(ft.Low), ft.Filetime())
}

func TestFormatFMTID(t *testing.T) {
	assert.Equal(t, "{F29F85E0-4FF9-1068-AB91-08002B27B3D9}", FormatFMTID(FMTIDSummaryInformation))
	assert.Equal(t, "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}", CLSID(FMTIDUserDefinedProperties).String())
}

func TestIsReservedPID(t *testing.T) {
	assert.True(t, IsReservedPID(PIDDictionary))
	assert.True(t, IsReservedPID(PIDCodePage))
	assert.True(t, IsReservedPID(PIDLocale))
	assert.False(t, IsReservedPID(2))
	assert.False(t, IsReservedPID(0x7FFFFFFF))
}

func TestDiagnostic(t *testing.T) {
	d := NewDiagnostic(`doc.xls\Sub`, "open storage", fmt.Errorf("open Sub: %w", ErrNotFound))
	assert.Equal(t, STG_E_FILENOTFOUND, d.Code)
	assert.Equal(t, `doc.xls\Sub: open storage failed: open Sub: not found (0x80030002)`, d.String())
}
