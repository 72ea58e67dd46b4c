package types

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// HRESULT is a platform status code attached to errors and diagnostics.
type HRESULT uint32

// Status codes used by the structured-storage provider.
const (
	S_OK                  HRESULT = 0x00000000
	E_FAIL                HRESULT = 0x80004005
	E_NOINTERFACE         HRESULT = 0x80004002
	STG_E_INVALIDFUNCTION HRESULT = 0x80030001
	STG_E_FILENOTFOUND    HRESULT = 0x80030002
	STG_E_PATHNOTFOUND    HRESULT = 0x80030003
	STG_E_ACCESSDENIED    HRESULT = 0x80030005
	STG_E_READFAULT       HRESULT = 0x8003001E
	STG_E_SHAREVIOLATION  HRESULT = 0x80030020
	STG_E_REVERTED        HRESULT = 0x80030102
	STG_E_INVALIDHEADER   HRESULT = 0x800300FB
	STG_E_INVALIDNAME     HRESULT = 0x800300FC
	STG_E_DOCFILECORRUPT  HRESULT = 0x80030109
)

var hresultNames = map[HRESULT]string{
	S_OK:                  "S_OK",
	E_FAIL:                "E_FAIL",
	E_NOINTERFACE:         "E_NOINTERFACE",
	STG_E_INVALIDFUNCTION: "STG_E_INVALIDFUNCTION",
	STG_E_FILENOTFOUND:    "STG_E_FILENOTFOUND",
	STG_E_PATHNOTFOUND:    "STG_E_PATHNOTFOUND",
	STG_E_ACCESSDENIED:    "STG_E_ACCESSDENIED",
	STG_E_READFAULT:       "STG_E_READFAULT",
	STG_E_SHAREVIOLATION:  "STG_E_SHAREVIOLATION",
	STG_E_REVERTED:        "STG_E_REVERTED",
	STG_E_INVALIDHEADER:   "STG_E_INVALIDHEADER",
	STG_E_INVALIDNAME:     "STG_E_INVALIDNAME",
	STG_E_DOCFILECORRUPT:  "STG_E_DOCFILECORRUPT",
}

// String returns the symbolic name, or 0xXXXXXXXX for unnamed codes.
func (h HRESULT) String() string {
	if name, ok := hresultNames[h]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(h))
}

// Hex returns the code as 0xXXXXXXXX.
func (h HRESULT) Hex() string { return fmt.Sprintf("0x%08X", uint32(h)) }

// MarshalText encodes the code in hex so JSON and YAML output stay readable.
func (h HRESULT) MarshalText() ([]byte, error) { return []byte(h.Hex()), nil }

// UnmarshalText parses the 0xXXXXXXXX form written by MarshalText.
func (h *HRESULT) UnmarshalText(text []byte) error {
	s := string(text)
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		digits, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return fmt.Errorf("status code %q: missing 0x prefix", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return fmt.Errorf("status code %q: %w", s, err)
	}
	*h = HRESULT(v)
	return nil
}

// Failed reports whether the code denotes failure (severity bit set).
func (h HRESULT) Failed() bool { return h&0x80000000 != 0 }

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // not a compound file / not a property set
	ErrKindCorrupt                    // structural corruption (bad chains, offsets, sizes)
	ErrKindUnsupported                // valid feature or capability we don't support
	ErrKindNotFound                   // missing storage, stream or property set
	ErrKindAccess                     // sharing or permission failures
	ErrKindState                      // invalid operation for current state (e.g., closed)
)

// Error is a typed error with a status code and an optional underlying cause.
type Error struct {
	Kind ErrKind
	Code HRESULT
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned (wrapped) by the reader and the provider.
var (
	// ErrNotCompound indicates the file lacks a valid compound file header.
	ErrNotCompound = &Error{Kind: ErrKindFormat, Code: STG_E_INVALIDHEADER, Msg: "not a compound file"}
	// ErrNotPropertySet indicates a stream that does not hold a serialized property set.
	ErrNotPropertySet = &Error{Kind: ErrKindFormat, Code: STG_E_INVALIDHEADER, Msg: "not a property set stream"}
	// ErrCorrupt indicates non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Code: STG_E_DOCFILECORRUPT, Msg: "corrupt compound file"}
	// ErrNotFound indicates a missing storage, stream, property set or property.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Code: STG_E_FILENOTFOUND, Msg: "not found"}
	// ErrNoInterface indicates a storage that does not expose the requested capability.
	ErrNoInterface = &Error{Kind: ErrKindUnsupported, Code: E_NOINTERFACE, Msg: "interface not supported"}
	// ErrUnsupported indicates a recognized but unsupported feature.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Code: STG_E_INVALIDFUNCTION, Msg: "unsupported feature"}
	// ErrShareViolation indicates the file is locked in a conflicting mode.
	ErrShareViolation = &Error{Kind: ErrKindAccess, Code: STG_E_SHAREVIOLATION, Msg: "sharing violation"}
	// ErrClosed indicates use of a storage or enumerator after Close.
	ErrClosed = &Error{Kind: ErrKindState, Code: STG_E_REVERTED, Msg: "object already closed"}
)

// StatusCode maps err to the status code reported in diagnostics. The
// outermost *Error in the chain wins; bare file-system errors map to their
// storage equivalents; anything else is E_FAIL.
func StatusCode(err error) HRESULT {
	if err == nil {
		return S_OK
	}
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return STG_E_FILENOTFOUND
	case errors.Is(err, fs.ErrPermission):
		return STG_E_ACCESSDENIED
	default:
		return E_FAIL
	}
}

// IsKind reports whether err wraps a typed error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == kind
}
