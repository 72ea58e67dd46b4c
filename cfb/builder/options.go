package builder

import "time"

// Options configures the builder.
type Options struct {
	// Timestamp is written as the created and modified time of every
	// storage. Zero leaves the timestamps unset, which keeps output
	// byte-for-byte reproducible.
	Timestamp time.Time

	// RootCLSID is stored on the root entry.
	// Default: zero GUID
	RootCLSID [16]byte
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() *Options {
	return &Options{}
}
