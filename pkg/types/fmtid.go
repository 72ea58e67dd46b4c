package types

import (
	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/format"
)

// FMTID identifies a property set.
type FMTID = ole.GUID

// Well-known property sets.
var (
	FMTIDSummaryInformation    = format.FMTIDSummaryInformation
	FMTIDDocSummaryInformation = format.FMTIDDocSummaryInformation
	// FMTIDUserDefinedProperties lives as the second section of the
	// DocumentSummaryInformation stream and never appears in normal
	// property-set enumeration.
	FMTIDUserDefinedProperties = format.FMTIDUserDefinedProperties
	FMTIDGlobalInfo            = format.FMTIDGlobalInfo
	FMTIDImageContents         = format.FMTIDImageContents
	FMTIDImageInfo             = format.FMTIDImageInfo
)

// Reserved property identifiers.
const (
	// PIDDictionary holds the PID to name map; its own entry names the set.
	PIDDictionary uint32 = format.PIDDictionary
	PIDCodePage   uint32 = format.PIDCodePage
	PIDLocale     uint32 = format.PIDLocale
	PIDBehavior   uint32 = format.PIDBehavior
)

// IsReservedPID reports whether pid is a system property that enumeration skips.
func IsReservedPID(pid uint32) bool {
	return pid == PIDDictionary || pid == PIDCodePage || pid >= format.PIDReservedMin
}

// FormatFMTID returns the braced canonical form {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}.
func FormatFMTID(id FMTID) string {
	return id.String()
}
