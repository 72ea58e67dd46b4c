package report

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

// Placeholder stands in for values that are unsupported or too wide.
const Placeholder = "..."

// RenderValue renders v for a buffer of width characters, one of which is
// reserved for a terminator. A rendering longer than width-1 becomes the
// placeholder when width is at least 4 and is cut to width-1 characters
// otherwise. A width below 1 yields "".
func RenderValue(v types.Value, width int) string {
	if width < 1 {
		return ""
	}
	s := FormatValue(v)
	limit := width - 1
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if width >= len(Placeholder)+1 {
		return Placeholder
	}
	return truncateRunes(s, limit)
}

// FormatValue renders v without a width limit:
//
//	empty, null         ""
//	integers            decimal
//	floats              fixed point, six decimals
//	strings             "quoted"
//	VT_BOOL             True / False
//	VT_ERROR            %08x
//	VT_FILETIME         %08x:%08x (high:low)
//	VT_CLSID            {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}
//	anything else       ...
func FormatValue(v types.Value) string {
	switch x := v.(type) {
	case types.Empty:
		return ""
	case types.Int:
		return strconv.FormatInt(x.V, 10)
	case types.Uint:
		return strconv.FormatUint(x.V, 10)
	case types.Float:
		return strconv.FormatFloat(x.V, 'f', 6, 64)
	case types.String:
		return `"` + x.V + `"`
	case types.Bool:
		if x {
			return "True"
		}
		return "False"
	case types.SCode:
		return fmt.Sprintf("%08x", uint32(x))
	case types.FileTime:
		return fmt.Sprintf("%08x:%08x", x.High, x.Low)
	case types.CLSID:
		return x.String()
	default:
		return Placeholder
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
