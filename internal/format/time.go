package format

import (
	"time"
)

const (
	filetimeOffset = 116444736000000000 // difference between FILETIME epoch and Unix epoch in 100ns units
	filetimeUnit   = 100                // FILETIME units are 100ns
)

// FiletimeToTime converts a Windows FILETIME value to time.Time.
// Values before the Unix epoch clamp to the epoch.
func FiletimeToTime(v uint64) time.Time {
	if v <= filetimeOffset {
		return time.Unix(0, 0).UTC()
	}
	ns := int64((v - filetimeOffset) * filetimeUnit)
	sec := ns / int64(time.Second)
	nsec := ns % int64(time.Second)
	return time.Unix(sec, nsec).UTC()
}

// TimeToFiletime converts a time.Time to a Windows FILETIME value.
func TimeToFiletime(t time.Time) uint64 {
	ns := t.UnixNano()
	if ns < 0 {
		ns = 0
	}
	return uint64(ns)/filetimeUnit + filetimeOffset
}

// SplitFiletime returns the high and low 32-bit words of a FILETIME.
func SplitFiletime(v uint64) (high, low uint32) {
	return uint32(v >> 32), uint32(v)
}

// JoinFiletime combines high and low words into a FILETIME.
func JoinFiletime(high, low uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}
