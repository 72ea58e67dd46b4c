package format

// Compound File Binary (MS-CFB) header layout.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   8    Signature D0 CF 11 E0 A1 B1 1A E1
//	 0x008  16    Header CLSID (all zero)
//	 0x018   2    Minor version (0x003E)
//	 0x01A   2    Major version (3 or 4)
//	 0x01C   2    Byte order mark (0xFFFE)
//	 0x01E   2    Sector shift (9 for v3, 12 for v4)
//	 0x020   2    Mini sector shift (6)
//	 0x028   4    Number of directory sectors (0 for v3)
//	 0x02C   4    Number of FAT sectors
//	 0x030   4    First directory sector
//	 0x034   4    Transaction signature
//	 0x038   4    Mini stream cutoff (4096)
//	 0x03C   4    First mini FAT sector
//	 0x040   4    Number of mini FAT sectors
//	 0x044   4    First DIFAT sector
//	 0x048   4    Number of DIFAT sectors
//	 0x04C 436    First 109 DIFAT entries
const (
	HeaderSize = 512

	HeaderSignatureOffset     = 0x000
	HeaderCLSIDOffset         = 0x008
	HeaderMinorVersionOffset  = 0x018
	HeaderMajorVersionOffset  = 0x01A
	HeaderByteOrderOffset     = 0x01C
	HeaderSectorShiftOffset   = 0x01E
	HeaderMiniShiftOffset     = 0x020
	HeaderNumDirSectorsOffset = 0x028
	HeaderNumFATSectorsOffset = 0x02C
	HeaderFirstDirOffset      = 0x030
	HeaderTxSignatureOffset   = 0x034
	HeaderMiniCutoffOffset    = 0x038
	HeaderFirstMiniFATOffset  = 0x03C
	HeaderNumMiniFATOffset    = 0x040
	HeaderFirstDIFATOffset    = 0x044
	HeaderNumDIFATOffset      = 0x048
	HeaderDIFATOffset         = 0x04C

	HeaderDIFATEntries = 109

	MinorVersion     = 0x003E
	MajorVersion3    = 3
	MajorVersion4    = 4
	ByteOrderMark    = 0xFFFE
	SectorShiftV3    = 9
	SectorShiftV4    = 12
	MiniSectorShift  = 6
	MiniSectorSize   = 1 << MiniSectorShift
	MiniStreamCutoff = 0x1000
)

// Signature is the 8-byte magic at the start of every compound file.
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Sector sentinels.
const (
	MaxRegSect = 0xFFFFFFFA
	DIFSect    = 0xFFFFFFFC
	FATSect    = 0xFFFFFFFD
	EndOfChain = 0xFFFFFFFE
	FreeSect   = 0xFFFFFFFF

	// NoStream marks an absent sibling or child in a directory entry.
	NoStream = 0xFFFFFFFF
)

// Directory entry layout (128 bytes).
const (
	DirEntrySize = 128

	DirNameOffset     = 0x00
	DirNameSize       = 64
	DirNameLenOffset  = 0x40
	DirTypeOffset     = 0x42
	DirColorOffset    = 0x43
	DirLeftOffset     = 0x44
	DirRightOffset    = 0x48
	DirChildOffset    = 0x4C
	DirCLSIDOffset    = 0x50
	DirStateOffset    = 0x60
	DirCreatedOffset  = 0x64
	DirModifiedOffset = 0x6C
	DirStartOffset    = 0x74
	DirSizeOffset     = 0x78

	// MaxNameChars is the longest entry name, excluding the terminating NUL.
	MaxNameChars = 31
)

// ObjectType is the directory entry object type byte.
type ObjectType uint8

const (
	ObjUnknown ObjectType = 0
	ObjStorage ObjectType = 1
	ObjStream  ObjectType = 2
	ObjRoot    ObjectType = 5
)

// Directory entry colours for the sibling red-black tree.
const (
	ColorRed   = 0
	ColorBlack = 1
)

// Serialized property set (MS-OLEPS) layout.
//
//	PropertySetStream
//	 0x00  2   Byte order (0xFFFE)
//	 0x02  2   Version (0 or 1)
//	 0x04  4   System identifier
//	 0x08 16   CLSID
//	 0x18  4   Number of property sets (sections)
//	 0x1C 20n  FMTID (16) + offset (4) per section
//
//	PropertySet (section)
//	 0x00  4   Size in bytes
//	 0x04  4   Number of properties
//	 0x08  8n  PID (4) + offset (4), offsets relative to section start
const (
	PropSetHeaderSize     = 0x1C
	PropSetByteOrder      = 0xFFFE
	PropSetFMTIDEntrySize = 20
	SectionHeaderSize     = 8
	PIDOffsetEntrySize    = 8

	// PropSetSystemID is the system identifier written by the builder (Win32, OS 10.0).
	PropSetSystemID = 0x0002000A

	// MaxSections bounds the section count accepted from a stream header.
	MaxSections = 16
)

// Reserved property identifiers.
const (
	PIDDictionary = 0x00000000
	PIDCodePage   = 0x00000001
	PIDLocale     = 0x80000000
	PIDBehavior   = 0x80000003
	PIDIllegal    = 0xFFFFFFFF

	// PIDReservedMin is the first identifier reserved for system use.
	PIDReservedMin = 0x80000000
)

// Well-known code pages.
const (
	CodePageUTF16       = 1200
	CodePageUTF8        = 65001
	CodePageWindows1252 = 1252
)

// PropSetNamePrefix marks property-set streams and storages (the "\005" control character).
const PropSetNamePrefix = '\x05'

// ContentsStream holds the property set inside a non-simple property-set storage.
const ContentsStream = "CONTENTS"
