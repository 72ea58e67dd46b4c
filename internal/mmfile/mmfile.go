// Package mmfile opens compound files read-only with deny-write sharing and
// maps them into memory.
package mmfile

import "errors"

// ErrShareViolation reports that another process holds the file open in a
// mode that conflicts with deny-write sharing.
var ErrShareViolation = errors.New("mmfile: sharing violation")
