package types

import (
	"time"

	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/format"
)

// VT is the platform's property type tag.
type VT = ole.VT

// Value is a decoded property value. The set of implementations is closed:
//
//	Empty       VT_EMPTY, VT_NULL
//	Int         VT_I1, VT_I2, VT_I4, VT_INT, VT_I8
//	Uint        VT_UI1, VT_UI2, VT_UI4, VT_UINT, VT_UI8
//	Float       VT_R4, VT_R8
//	String      VT_LPSTR, VT_BSTR (code page strings), VT_LPWSTR
//	Bool        VT_BOOL
//	SCode       VT_ERROR
//	FileTime    VT_FILETIME
//	CLSID       VT_CLSID
//	Unsupported every other tag
type Value interface {
	// VT returns the type tag the value was stored with.
	VT() VT
	value()
}

// Empty is a value without data.
type Empty struct{ Type VT }

// Int is a signed integer of the width given by Type.
type Int struct {
	Type VT
	V    int64
}

// Uint is an unsigned integer of the width given by Type.
type Uint struct {
	Type VT
	V    uint64
}

// Float is a 32- or 64-bit floating point number; VT_R4 values are widened.
type Float struct {
	Type VT
	V    float64
}

// String is a byte or wide string, already decoded to UTF-8.
type String struct {
	Type VT
	V    string
}

// Bool is VT_BOOL.
type Bool bool

// SCode is a VT_ERROR status code.
type SCode uint32

// FileTime is VT_FILETIME as its two 32-bit words.
type FileTime struct {
	High uint32
	Low  uint32
}

// CLSID is VT_CLSID.
type CLSID ole.GUID

// Unsupported carries the tag of a value the decoder does not interpret.
type Unsupported struct{ Type VT }

func (v Empty) VT() VT       { return v.Type }
func (v Int) VT() VT         { return v.Type }
func (v Uint) VT() VT        { return v.Type }
func (v Float) VT() VT       { return v.Type }
func (v String) VT() VT      { return v.Type }
func (Bool) VT() VT          { return ole.VT_BOOL }
func (SCode) VT() VT         { return ole.VT_ERROR }
func (FileTime) VT() VT      { return ole.VT_FILETIME }
func (CLSID) VT() VT         { return ole.VT_CLSID }
func (v Unsupported) VT() VT { return v.Type }

func (Empty) value()       {}
func (Int) value()         {}
func (Uint) value()        {}
func (Float) value()       {}
func (String) value()      {}
func (Bool) value()        {}
func (SCode) value()       {}
func (FileTime) value()    {}
func (CLSID) value()       {}
func (Unsupported) value() {}

// Filetime returns the raw 64-bit FILETIME.
func (v FileTime) Filetime() uint64 { return format.JoinFiletime(v.High, v.Low) }

// Time converts the value to UTC.
func (v FileTime) Time() time.Time { return format.FiletimeToTime(v.Filetime()) }

// NewFileTime splits a time into FILETIME words.
func NewFileTime(t time.Time) FileTime {
	high, low := format.SplitFiletime(format.TimeToFiletime(t))
	return FileTime{High: high, Low: low}
}

// String returns the braced canonical form.
func (v CLSID) String() string {
	g := ole.GUID(v)
	return g.String()
}
