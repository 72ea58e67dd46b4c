// Package codepage maps Windows code page identifiers, as stored in the
// PID_CODEPAGE property of a property set, to text encodings.
package codepage

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

const (
	// UTF16 is the code page of property sets whose strings are UTF-16LE.
	UTF16 = 1200
	// UTF8 is the UTF-8 code page.
	UTF8 = 65001
	// Default is assumed when a property set carries no code page.
	Default = 1252
)

var encodings = map[uint16]encoding.Encoding{
	UTF16: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	UTF8:  unicode.UTF8,

	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	855:  charmap.CodePage855,
	858:  charmap.CodePage858,
	860:  charmap.CodePage860,
	862:  charmap.CodePage862,
	863:  charmap.CodePage863,
	865:  charmap.CodePage865,
	866:  charmap.CodePage866,
	874:  charmap.Windows874,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,

	10000: charmap.Macintosh,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28593: charmap.ISO8859_3,
	28594: charmap.ISO8859_4,
	28595: charmap.ISO8859_5,
	28596: charmap.ISO8859_6,
	28597: charmap.ISO8859_7,
	28598: charmap.ISO8859_8,
	28599: charmap.ISO8859_9,
	28600: charmap.ISO8859_10,
	28603: charmap.ISO8859_13,
	28604: charmap.ISO8859_14,
	28605: charmap.ISO8859_15,

	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	54936: simplifiedchinese.GB18030,
}

// Known reports whether cp has a dedicated encoding.
func Known(cp uint16) bool {
	_, ok := encodings[cp]
	return ok
}

// Encoding returns the encoding for cp, falling back to Windows-1252.
func Encoding(cp uint16) encoding.Encoding {
	if enc, ok := encodings[cp]; ok {
		return enc
	}
	return charmap.Windows1252
}

// IsUnicode reports whether strings in cp are stored as UTF-16LE.
func IsUnicode(cp uint16) bool { return cp == UTF16 }

// Decode converts b from cp to UTF-8 and strips trailing NULs.
func Decode(cp uint16, b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	if IsUnicode(cp) && len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	out, err := Encoding(cp).NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("codepage %d: %w", cp, err)
	}
	return strings.TrimRight(string(out), "\x00"), nil
}

// Encode converts s to cp. The result carries no terminator.
func Encode(cp uint16, s string) ([]byte, error) {
	out, err := Encoding(cp).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("codepage %d: %w", cp, err)
	}
	return out, nil
}
