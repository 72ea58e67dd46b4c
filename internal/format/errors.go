package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic or byte order mark.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupported indicates the structure or feature is not supported.
	ErrUnsupported = errors.New("format: unsupported feature")
	// ErrBadName indicates a property-set stream name that does not encode an FMTID.
	ErrBadName = errors.New("format: invalid property set name")
)
